package romaji

import "strings"

// Parts splits a displayed prompt into the portion the player has completed
// and the portion still to type. Input+Remaining always equals the prompt.
type Parts struct {
	Input     string `json:"input"`
	Remaining string `json:"remaining"`
}

// Pair is one aligned unit: the chunk of the canonical spelling the player
// types and the chunk of the prompt it lights up.
type Pair struct {
	Canonical string
	Display   string
	Kind      Kind

	accepts []string
}

// Alignment is the ordered list of pairs for one word. Build it once per word
// with NewAlignment or Align, then query it on every keystroke.
type Alignment struct {
	pairs   []Pair
	display string
}

// NewAlignment aligns canonical with its kunrei-shiki prompt.
func NewAlignment(canonical string) Alignment {
	if a, ok := Align(canonical, ToKunrei(Normalize(canonical))); ok {
		return a
	}
	// Only reachable for input where a rewrite manufactures a sokuon; fall
	// back to a chunk-by-chunk prompt, which always lines up.
	chunks := Split(canonical)
	return build(chunks, convertChunks(chunks, toKunrei, false))
}

// Align pairs the chunks of canonical with the chunks of display. It fails
// when display does not spell the same syllables in the same order.
func Align(canonical, display string) (Alignment, bool) {
	chunks := Split(canonical)

	derived := convertChunks(chunks, toKunrei, false)
	if strings.Join(derived, "") == display {
		return build(chunks, derived), true
	}

	shown := Split(display)
	if len(shown) != len(chunks) {
		return Alignment{display: display}, false
	}
	texts := make([]string, len(shown))
	for i, c := range chunks {
		if !sameSound(c, shown[i]) {
			return Alignment{display: display}, false
		}
		texts[i] = shown[i].Text
	}
	return build(chunks, texts), true
}

func sameSound(a, b Chunk) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Syllable:
		return toHepburn(a.Text) == toHepburn(b.Text)
	case Sokuon, MoraicN:
		return true
	default:
		return a.Text == b.Text
	}
}

func build(chunks []Chunk, display []string) Alignment {
	pairs := make([]Pair, len(chunks))
	for i, c := range chunks {
		pairs[i] = Pair{Canonical: c.Text, Display: display[i], Kind: c.Kind}
	}
	// Sokuon spellings depend on the chunk after them, so walk backwards.
	for i := len(pairs) - 1; i >= 0; i-- {
		pairs[i].accepts = acceptsFor(pairs, i)
	}
	return Alignment{pairs: pairs, display: strings.Join(display, "")}
}

func acceptsFor(pairs []Pair, i int) []string {
	p := pairs[i]
	switch p.Kind {
	case Syllable:
		return spellings[toHepburn(p.Canonical)]
	case MoraicN:
		if p.Canonical == "n'" {
			return []string{"n'", "nn"}
		}
		// "nn" would swallow the n of a following na/ni/nu/ne/no.
		if i+1 < len(pairs) && strings.HasPrefix(pairs[i+1].Canonical, "n") {
			return []string{"n"}
		}
		return []string{"nn", "n"}
	case Sokuon:
		if i+1 >= len(pairs) || pairs[i+1].Kind != Syllable {
			return []string{p.Canonical}
		}
		letters := []string{p.Canonical}
		for _, s := range pairs[i+1].accepts {
			lead := []string{s[:1]}
			// "ch" doubles as "tch" in Hepburn and as "cch" in IME input.
			if strings.HasPrefix(s, "ch") {
				lead = []string{"t", "c"}
			}
			for _, l := range lead {
				if !contains(letters, l) {
					letters = append(letters, l)
				}
			}
		}
		return letters
	default:
		return []string{p.Canonical}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Display returns the prompt the alignment was built for.
func (a Alignment) Display() string {
	return a.display
}

// Pairs returns a copy of the aligned chunks.
func (a Alignment) Pairs() []Pair {
	out := make([]Pair, len(a.pairs))
	copy(out, a.pairs)
	return out
}

// Len returns the number of pairs.
func (a Alignment) Len() int {
	return len(a.pairs)
}

// Parts reports how much of the prompt typed has completed. A chunk whose
// keystrokes are only partly typed stays in Remaining.
func (a Alignment) Parts(typed string) Parts {
	done, _, _ := a.walk(typed)
	n := 0
	for _, p := range a.pairs[:done] {
		n += len(p.Display)
	}
	return Parts{Input: a.display[:n], Remaining: a.display[n:]}
}

// Accepts reports whether typed is a prefix of some complete spelling of the word.
func (a Alignment) Accepts(typed string) bool {
	_, _, ok := a.walk(typed)
	return ok
}

// Complete reports whether typed spells the whole word and nothing more.
func (a Alignment) Complete(typed string) bool {
	done, consumed, ok := a.walk(typed)
	return ok && done == len(a.pairs) && consumed == len(typed)
}

// Completed returns the number of pairs typed finishes.
func (a Alignment) Completed(typed string) int {
	done, _, _ := a.walk(typed)
	return done
}

// walk consumes typed pair by pair, taking the longest accepted spelling at
// each step. It returns the number of completed pairs, the bytes they used,
// and whether the leftover is a valid start of the next pair.
func (a Alignment) walk(typed string) (done, consumed int, ok bool) {
	rest := typed
	var lead byte
	for i, p := range a.pairs {
		if rest == "" {
			return i, consumed, true
		}
		best, partial := "", false
		for _, s := range p.accepts {
			if lead != 0 && p.Kind == Syllable && !followsSokuon(lead, s) {
				continue
			}
			switch {
			case strings.HasPrefix(rest, s):
				if len(s) > len(best) {
					best = s
				}
			case strings.HasPrefix(s, rest):
				partial = true
			}
		}
		if best == "" {
			return i, consumed, partial
		}
		rest = rest[len(best):]
		consumed += len(best)
		lead = 0
		if p.Kind == Sokuon {
			lead = best[0]
		}
	}
	return len(a.pairs), consumed, rest == ""
}

func followsSokuon(lead byte, s string) bool {
	return s[0] == lead || (lead == 't' && strings.HasPrefix(s, "ch"))
}

// DisplayParts splits display into the part completed by typed and the rest.
// typed is matched against canonical; display may spell the same syllables
// in another style. If display cannot be aligned with canonical, nothing is
// marked complete.
func DisplayParts(canonical, typed, display string) Parts {
	a, ok := Align(canonical, display)
	if !ok {
		return Parts{Remaining: display}
	}
	return a.Parts(typed)
}
