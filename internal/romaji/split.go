package romaji

import "strings"

// Kind classifies a chunk of romaji.
type Kind int

const (
	// Other is any byte the splitter does not recognize. It passes through unchanged.
	Other Kind = iota
	// Syllable is one kana syllable, e.g. "ka", "shi", "kyo".
	Syllable
	// Sokuon is the first letter of a doubled consonant (っ), e.g. the first "k" of "kka".
	Sokuon
	// MoraicN is the syllabic n (ん), written "n" or "n'".
	MoraicN
)

func (k Kind) String() string {
	switch k {
	case Syllable:
		return "syllable"
	case Sokuon:
		return "sokuon"
	case MoraicN:
		return "moraic-n"
	default:
		return "other"
	}
}

// Chunk is one phonetic unit of a romaji string.
type Chunk struct {
	Text string
	Kind Kind
}

// Split tokenizes s into chunks. Concatenating the Text of the returned
// chunks always yields s.
func Split(s string) []Chunk {
	var chunks []Chunk
	for i := 0; i < len(s); {
		c := next(s[i:])
		chunks = append(chunks, c)
		i += len(c.Text)
	}
	return chunks
}

func next(s string) Chunk {
	for n := min(maxSyllableLen, len(s)); n > 0; n-- {
		if _, ok := syllables[s[:n]]; ok {
			return Chunk{Text: s[:n], Kind: Syllable}
		}
	}

	c := s[0]
	if len(s) > 1 && isDoubling(c, s[1:]) {
		return Chunk{Text: s[:1], Kind: Sokuon}
	}
	if c == 'n' {
		if strings.HasPrefix(s, "n'") {
			return Chunk{Text: "n'", Kind: MoraicN}
		}
		return Chunk{Text: "n", Kind: MoraicN}
	}
	return Chunk{Text: s[:1], Kind: Other}
}

// isDoubling reports whether consonant c followed by rest spells a sokuon:
// "kk", "ss", "pp", or Hepburn's "tch".
func isDoubling(c byte, rest string) bool {
	if !isConsonant(c) || c == 'n' {
		return false
	}
	if rest[0] == c {
		return true
	}
	return c == 't' && strings.HasPrefix(rest, "ch")
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}

// IsKey reports whether c is a key the game accepts: a lowercase letter, the
// apostrophe that separates n from a following vowel, or the long-vowel dash.
func IsKey(c byte) bool {
	return c >= 'a' && c <= 'z' || c == '\'' || c == '-'
}

// Typeable reports whether s is non-empty and every byte of it is a key.
func Typeable(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsKey(s[i]) {
			return false
		}
	}
	return true
}
