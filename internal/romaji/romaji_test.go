package romaji

import (
	"strings"
	"testing"
)

// corpus covers every chunk kind and both spelling styles.
var corpus = []string{
	"", "neko", "shi", "si", "sushi", "susi", "chikatetsu", "tikatetu", "tsukue", "fuji", "huzi",
	"kitte", "kippu", "matcha", "maccha", "mattya", "zasshi", "zassi", "gakkou", "shashin", "syasin",
	"jisho", "zisyo", "jyuu", "kon'ya", "konnichiwa", "kanji", "hon", "honn", "ramen-", "ra-men",
	"densha", "tyotto", "chotto", "xtu", "ltsu", "q", "hello world", "NEKO", "n",
}

// malformed strings where a rewrite manufactures a doubled consonant.
var malformed = []string{"cti", "zji", "fhu", "ttti"}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"neko", "neko"},
		{"si", "shi"},
		{"susi", "sushi"},
		{"tikatetu", "chikatetsu"},
		{"huzi", "fuji"},
		{"zisyo", "jisho"},
		{"jyuu", "juu"},
		{"mattya", "matcha"},
		{"maccha", "matcha"},
		{"zassi", "zasshi"},
		{"tyotto", "chotto"},
		{"dya", "ja"},
		{"kon'ya", "kon'ya"},
		{"ra-men", "ra-men"},
		{"hello world", "hello world"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToKunrei(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"neko", "neko"},
		{"shi", "si"},
		{"sushi", "susi"},
		{"chikatetsu", "tikatetu"},
		{"fuji", "huzi"},
		{"jisho", "zisyo"},
		{"shashin", "syasin"},
		{"matcha", "mattya"},
		{"zasshi", "zassi"},
		{"chotto", "tyotto"},
		{"konnichiwa", "konnitiwa"},
		{"kanji", "kanzi"},
		{"densha", "densya"},
		{"kitte", "kitte"},
	}
	for _, tt := range tests {
		got := ToKunrei(tt.input)
		if got != tt.want {
			t.Errorf("ToKunrei(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, x := range append(corpus, malformed...) {
		once := Normalize(x)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", x, twice, once)
		}
	}
}

func TestToKunreiIdempotent(t *testing.T) {
	for _, x := range append(corpus, malformed...) {
		once := ToKunrei(x)
		if twice := ToKunrei(once); twice != once {
			t.Errorf("ToKunrei(ToKunrei(%q)) = %q, want %q", x, twice, once)
		}
	}
}

func TestSplitIsLossless(t *testing.T) {
	for _, x := range corpus {
		var b strings.Builder
		for _, c := range Split(x) {
			b.WriteString(c.Text)
		}
		if b.String() != x {
			t.Errorf("joined Split(%q) = %q", x, b.String())
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []Chunk
	}{
		{"neko", []Chunk{{"ne", Syllable}, {"ko", Syllable}}},
		{"kitte", []Chunk{{"ki", Syllable}, {"t", Sokuon}, {"te", Syllable}}},
		{"matcha", []Chunk{{"ma", Syllable}, {"t", Sokuon}, {"cha", Syllable}}},
		{"kon'ya", []Chunk{{"ko", Syllable}, {"n'", MoraicN}, {"ya", Syllable}}},
		{"konnichiwa", []Chunk{{"ko", Syllable}, {"n", MoraicN}, {"ni", Syllable}, {"chi", Syllable}, {"wa", Syllable}}},
		{"a-", []Chunk{{"a", Syllable}, {"-", Other}}},
	}
	for _, tt := range tests {
		got := Split(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("Split(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Split(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDisplayPartsExamples(t *testing.T) {
	tests := []struct {
		canonical string
		typed     string
		display   string
		want      Parts
	}{
		{"shi", "s", "si", Parts{Input: "", Remaining: "si"}},
		{"shi", "sh", "si", Parts{Input: "", Remaining: "si"}},
		{"shi", "shi", "si", Parts{Input: "si", Remaining: ""}},
		{"neko", "ne", "neko", Parts{Input: "ne", Remaining: "ko"}},
		{"neko", "n", "neko", Parts{Input: "", Remaining: "neko"}},
		{"chikatetsu", "chika", "tikatetu", Parts{Input: "tika", Remaining: "tetu"}},
		{"chikatetsu", "chikatets", "tikatetu", Parts{Input: "tikate", Remaining: "tu"}},
		{"matcha", "mat", "mattya", Parts{Input: "mat", Remaining: "tya"}},
		{"matcha", "matcha", "mattya", Parts{Input: "mattya", Remaining: ""}},
		// variant spellings complete chunks too
		{"sushi", "susi", "susi", Parts{Input: "susi", Remaining: ""}},
		{"chotto", "tyo", "tyotto", Parts{Input: "tyo", Remaining: "tto"}},
		// a wrong key keeps what was already complete
		{"neko", "nex", "neko", Parts{Input: "ne", Remaining: "ko"}},
		// display in Hepburn style aligns as well
		{"susi", "su", "sushi", Parts{Input: "su", Remaining: "shi"}},
		// display that spells something else is never matched
		{"neko", "ne", "inu", Parts{Input: "", Remaining: "inu"}},
	}
	for _, tt := range tests {
		got := DisplayParts(tt.canonical, tt.typed, tt.display)
		if got != tt.want {
			t.Errorf("DisplayParts(%q, %q, %q) = %+v, want %+v", tt.canonical, tt.typed, tt.display, got, tt.want)
		}
	}
}

func TestDisplayPartsLaws(t *testing.T) {
	for _, canonical := range corpus {
		display := ToKunrei(Normalize(canonical))

		if got := DisplayParts(canonical, "", display); got.Input != "" {
			t.Errorf("DisplayParts(%q, \"\", %q).Input = %q, want empty", canonical, display, got.Input)
		}
		if got := DisplayParts(canonical, canonical, display); got.Remaining != "" {
			t.Errorf("DisplayParts(%q, %q, %q).Remaining = %q, want empty", canonical, canonical, display, got.Remaining)
		}
		for i := 0; i <= len(canonical); i++ {
			typed := canonical[:i]
			got := DisplayParts(canonical, typed, display)
			if got.Input+got.Remaining != display {
				t.Errorf("DisplayParts(%q, %q, %q) = %+v does not rebuild the display", canonical, typed, display, got)
			}
		}
	}
}

func TestAlignmentAccepts(t *testing.T) {
	a := NewAlignment("kanji")
	for _, typed := range []string{"", "k", "ka", "kan", "kann", "kanj", "kanji", "kannji", "kanzi", "kannzi"} {
		if !a.Accepts(typed) {
			t.Errorf("Accepts(%q) = false, want true", typed)
		}
	}
	for _, typed := range []string{"x", "kax", "kanjii", "kannn"} {
		if a.Accepts(typed) {
			t.Errorf("Accepts(%q) = true, want false", typed)
		}
	}
	if !a.Complete("kanji") || !a.Complete("kannzi") {
		t.Errorf("Complete should accept both spellings")
	}
	if a.Complete("kanj") {
		t.Errorf("Complete(%q) = true, want false", "kanj")
	}
}

func TestAlignmentMoraicNBeforeN(t *testing.T) {
	a := NewAlignment("konnichiwa")
	if !a.Complete("konnichiwa") {
		t.Errorf("Complete(konnichiwa) = false")
	}
	if !a.Complete("konnitiwa") {
		t.Errorf("Complete(konnitiwa) = false")
	}
	if got := a.Parts("kon"); got.Input != "kon" {
		t.Errorf("Parts(kon).Input = %q, want %q", got.Input, "kon")
	}
	if got := a.Parts("konn"); got.Input != "kon" {
		t.Errorf("Parts(konn).Input = %q, want %q", got.Input, "kon")
	}
}

func TestAlignmentSokuonFollowsNextSpelling(t *testing.T) {
	a := NewAlignment("matcha")
	for _, typed := range []string{"matcha", "maccha", "mattya"} {
		if !a.Complete(typed) {
			t.Errorf("Complete(%q) = false, want true", typed)
		}
	}
	if a.Accepts("macti") {
		t.Errorf("Accepts(%q) = true, want false", "macti")
	}
}

func TestAlignmentSokuonBeforeChi(t *testing.T) {
	a := NewAlignment("kotchi")
	for _, typed := range []string{"kotchi", "kocchi", "kotti"} {
		if !a.Complete(typed) {
			t.Errorf("Complete(%q) = false, want true", typed)
		}
	}
	if !a.Accepts("koc") {
		t.Errorf("Accepts(%q) = false, want true", "koc")
	}
	if a.Accepts("kocti") {
		t.Errorf("Accepts(%q) = true, want false", "kocti")
	}
	if got := Normalize("kocchi"); got != "kotchi" {
		t.Errorf("Normalize(kocchi) = %q, want %q", got, "kotchi")
	}
}

func TestAlignmentTypesOwnDisplay(t *testing.T) {
	for _, s := range append(append([]string{}, corpus...), malformed...) {
		s = strings.ToLower(s)
		a := NewAlignment(s)
		if !a.Complete(s) {
			t.Errorf("NewAlignment(%q).Complete(%q) = false", s, s)
		}
		got := DisplayParts(s, s, a.Display())
		if got.Remaining != "" {
			t.Errorf("DisplayParts(%q, %q, %q).Remaining = %q, want empty", s, s, a.Display(), got.Remaining)
		}
	}
}

func TestIsKey(t *testing.T) {
	for _, c := range []byte("az'-") {
		if !IsKey(c) {
			t.Errorf("IsKey(%q) = false, want true", c)
		}
	}
	for _, c := range []byte("AZ09 .!\t") {
		if IsKey(c) {
			t.Errorf("IsKey(%q) = true, want false", c)
		}
	}
}

func TestTypeable(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"neko", true},
		{"kon'ya", true},
		{"ra-men", true},
		{"", false},
		{"neko 2", false},
		{"Neko", false},
		{"ne.ko", false},
		{"ねこ", false},
	}
	for _, tt := range tests {
		if got := Typeable(tt.input); got != tt.want {
			t.Errorf("Typeable(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAlignmentDisplay(t *testing.T) {
	a := NewAlignment("shashin")
	if a.Display() != "syasin" {
		t.Errorf("Display() = %q, want %q", a.Display(), "syasin")
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
	if got := a.Completed("shashi"); got != 2 {
		t.Errorf("Completed(shashi) = %d, want 2", got)
	}
}
