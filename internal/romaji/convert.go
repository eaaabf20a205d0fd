// Package romaji converts between romanization styles of Japanese and tracks
// how far a player's keystrokes have progressed through a prompt.
//
// Word lists store a canonical spelling. The prompt is displayed in
// kunrei-shiki, and the player may type either style. All functions here are
// pure and never fail: bytes that are not romaji pass through unchanged.
package romaji

import "strings"

// Normalize rewrites romaji into Hepburn spelling: "si" becomes "shi",
// "tu" becomes "tsu", "zya" becomes "ja" and so on. Input that matches no
// rule is returned unchanged. Normalize is idempotent.
func Normalize(s string) string {
	return rewrite(s, toHepburn, true)
}

// ToKunrei rewrites romaji into kunrei-shiki for display: "shi" becomes "si",
// "cha" becomes "tya", "fu" becomes "hu". ToKunrei is idempotent.
func ToKunrei(s string) string {
	return rewrite(s, toKunrei, false)
}

// A rewrite can turn a stray consonant into a sokuon ("c"+"ti" -> "cchi"),
// so passes repeat until the output is stable.
const maxPasses = 4

func rewrite(s string, syllable func(string) string, hepburnSokuon bool) string {
	for range maxPasses {
		out := strings.Join(convertChunks(Split(s), syllable, hepburnSokuon), "")
		if out == s {
			break
		}
		s = out
	}
	return s
}

// convertChunks maps each syllable through fn and respells every sokuon so it
// doubles the consonant that now follows it.
func convertChunks(chunks []Chunk, fn func(string) string, hepburnSokuon bool) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		if c.Kind == Syllable {
			out[i] = fn(c.Text)
		} else {
			out[i] = c.Text
		}
	}
	for i, c := range chunks {
		if c.Kind != Sokuon || i+1 >= len(chunks) || chunks[i+1].Kind != Syllable {
			continue
		}
		out[i] = sokuonFor(out[i+1], hepburnSokuon)
	}
	return out
}

func sokuonFor(following string, hepburnStyle bool) string {
	if hepburnStyle && strings.HasPrefix(following, "ch") {
		return "t"
	}
	return following[:1]
}
