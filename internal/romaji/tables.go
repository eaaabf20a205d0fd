package romaji

import (
	"cmp"
	"slices"
	"strings"
)

// Every syllable spelling the splitter recognizes. Hepburn, kunrei and the
// common IME input variants are all listed so that any of them tokenizes.
const syllableList = `
a i u e o
ka ki ku ke ko kya kyu kyo
ga gi gu ge go gya gyu gyo
sa si su se so shi sha shu sho she sya syu syo sye
za zi zu ze zo ji ja ju jo je zya zyu zyo zye jya jyu jyo jye
ta ti tu te to chi tsu cha chu cho che tya tyu tyo tye cya cyu cyo cye tsa tsi tse tso thi thu
da di du de do dya dyu dyo dhi dhu
na ni nu ne no nya nyu nyo
ha hi hu he ho hya hyu hyo fu fa fi fe fo fyu
ba bi bu be bo bya byu byo
pa pi pu pe po pya pyu pyo
ma mi mu me mo mya myu myo
ya yu yo ye
ra ri ru re ro rya ryu ryo
wa wi we wo
va vi vu ve vo
xa xi xu xe xo xya xyu xyo xtu xtsu xwa
la li lu le lo lya lyu lyo ltu ltsu lwa
`

// Variant spelling -> Hepburn.
var hepburn = map[string]string{
	"si": "shi", "zi": "ji", "ti": "chi", "tu": "tsu", "hu": "fu", "di": "ji", "du": "zu",

	"sya": "sha", "syu": "shu", "syo": "sho", "sye": "she",
	"tya": "cha", "tyu": "chu", "tyo": "cho", "tye": "che",
	"cya": "cha", "cyu": "chu", "cyo": "cho", "cye": "che",
	"zya": "ja", "zyu": "ju", "zyo": "jo", "zye": "je",
	"jya": "ja", "jyu": "ju", "jyo": "jo", "jye": "je",
	"dya": "ja", "dyu": "ju", "dyo": "jo",
}

// Hepburn -> kunrei-shiki (ISO 3602).
var kunrei = map[string]string{
	"shi": "si", "chi": "ti", "tsu": "tu", "fu": "hu", "ji": "zi",
	"sha": "sya", "shu": "syu", "sho": "syo", "she": "sye",
	"cha": "tya", "chu": "tyu", "cho": "tyo", "che": "tye",
	"ja": "zya", "ju": "zyu", "jo": "zyo", "je": "zye",
}

var (
	syllables = map[string]struct{}{}
	// Hepburn form -> every spelling that normalizes to it, longest first.
	spellings = map[string][]string{}
	maxSyllableLen int
)

func init() {
	for _, s := range strings.Fields(syllableList) {
		syllables[s] = struct{}{}
		maxSyllableLen = max(maxSyllableLen, len(s))
		h := toHepburn(s)
		spellings[h] = append(spellings[h], s)
	}
	for _, group := range spellings {
		slices.SortFunc(group, func(a, b string) int {
			if c := cmp.Compare(len(b), len(a)); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
	}
}

func toHepburn(syllable string) string {
	if h, ok := hepburn[syllable]; ok {
		return h
	}
	return syllable
}

func toKunrei(syllable string) string {
	h := toHepburn(syllable)
	if k, ok := kunrei[h]; ok {
		return k
	}
	return h
}
