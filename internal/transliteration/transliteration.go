package transliteration

import (
	"unicode"
)

// Script is the writing system a word is written in.
type Script string

const (
	ScriptKana  Script = "kana"
	ScriptKanji Script = "kanji"
	ScriptLatin Script = "latin"
)

// Transliterate converts a kana reading to Hepburn romaji as typed on a
// romaji keyboard. Returns empty string when text contains no kana.
func Transliterate(text string) string {
	if DetectScript(text) != ScriptKana {
		return ""
	}
	return romanizeKana(text)
}

// DetectScript reports kana if any hiragana or katakana is present, then
// kanji for Han characters, otherwise latin.
func DetectScript(text string) Script {
	for _, r := range text {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return ScriptKana
		}
	}
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return ScriptKanji
		}
	}
	return ScriptLatin
}
