package transliteration

import "strings"

const (
	katakanaStart = 0x30A1
	katakanaEnd   = 0x30F6
	kanaOffset    = 0x60

	sokuon    = 'っ'
	moraicN   = 'ん'
	longVowel = 'ー'
)

// Hepburn, spelled the way a romaji keyboard expects it.
var hiragana = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "i", 'ゑ': "e", 'を': "wo",
	'ゔ': "vu",
	'ぁ': "xa", 'ぃ': "xi", 'ぅ': "xu", 'ぇ': "xe", 'ぉ': "xo",
	'ゃ': "xya", 'ゅ': "xyu", 'ょ': "xyo", 'ゎ': "xwa",
}

var smallY = map[rune]string{'ゃ': "a", 'ゅ': "u", 'ょ': "o"}

var smallVowel = map[rune]string{'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o"}

// Irregular base+small-vowel spellings; the rest follow the f/v/ts rule.
var smallVowelSpecial = map[string]string{
	"te+i": "thi", "te+u": "thu",
	"de+i": "dhi", "de+u": "dhu",
	"u+i": "wi", "u+e": "we", "u+o": "wo",
	"shi+e": "she", "chi+e": "che", "ji+e": "je",
}

func toHiragana(r rune) rune {
	if r >= katakanaStart && r <= katakanaEnd {
		return r - kanaOffset
	}
	return r
}

func romanizeKana(text string) string {
	var rs []rune
	for _, r := range text {
		rs = append(rs, toHiragana(r))
	}

	var segs []string
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch r {
		case sokuon:
			segs = append(segs, string(sokuon))
			continue
		case moraicN:
			segs = append(segs, string(moraicN))
			continue
		case longVowel:
			segs = append(segs, "-")
			continue
		}

		base, ok := hiragana[r]
		if !ok {
			segs = append(segs, string(r))
			continue
		}
		if i+1 < len(rs) {
			if s, ok := combine(base, rs[i+1]); ok {
				segs = append(segs, s)
				i++
				continue
			}
		}
		segs = append(segs, base)
	}

	var b strings.Builder
	for i, s := range segs {
		var following string
		if i+1 < len(segs) {
			following = segs[i+1]
		}
		switch s {
		case string(sokuon):
			b.WriteString(sokuonSpelling(following))
		case string(moraicN):
			b.WriteString(moraicNSpelling(following))
		default:
			b.WriteString(s)
		}
	}
	return b.String()
}

// combine merges a base kana with a following small kana: き+ゃ -> kya,
// し+ゃ -> sha, ふ+ぁ -> fa.
func combine(base string, small rune) (string, bool) {
	if v, ok := smallY[small]; ok && len(base) >= 2 && strings.HasSuffix(base, "i") {
		stem := strings.TrimSuffix(base, "i")
		switch stem {
		case "sh", "ch", "j":
			return stem + v, true
		}
		return stem + "y" + v, true
	}
	if v, ok := smallVowel[small]; ok {
		if s, ok := smallVowelSpecial[base+"+"+v]; ok {
			return s, true
		}
		switch base {
		case "fu", "vu", "tsu":
			return strings.TrimSuffix(base, "u") + v, true
		}
	}
	return "", false
}

func sokuonSpelling(following string) string {
	if following == "" || !isConsonant(following[0]) || following[0] == 'n' {
		return "xtu"
	}
	if strings.HasPrefix(following, "ch") {
		return "t"
	}
	return following[:1]
}

func moraicNSpelling(following string) string {
	if following != "" && (isVowel(following[0]) || following[0] == 'y') {
		return "n'"
	}
	return "n"
}

func isVowel(c byte) bool {
	return strings.IndexByte("aiueo", c) >= 0
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}
