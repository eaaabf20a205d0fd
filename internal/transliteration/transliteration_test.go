package transliteration

import "testing"

func TestTransliterateHiragana(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ねこ", "neko"},
		{"すし", "sushi"},
		{"ちかてつ", "chikatetsu"},
		{"きって", "kitte"},
		{"まっちゃ", "matcha"},
		{"しゃしん", "shashin"},
		{"じしょ", "jisho"},
		{"こんにちは", "konnichiha"},
		{"こんや", "kon'ya"},
		{"ほん", "hon"},
		{"きんえん", "kin'en"},
		{"がっこう", "gakkou"},
	}
	for _, tt := range tests {
		got := Transliterate(tt.input)
		if got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTransliterateKatakana(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ラーメン", "ra-men"},
		{"コーヒー", "ko-hi-"},
		{"パーティー", "pa-thi-"},
		{"ファイル", "fairu"},
		{"ヴァイオリン", "vaiorin"},
		{"ウェブ", "webu"},
	}
	for _, tt := range tests {
		got := Transliterate(tt.input)
		if got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTransliterateTrailingSokuon(t *testing.T) {
	got := Transliterate("あっ")
	if got != "axtu" {
		t.Errorf("Transliterate(%q) = %q, want %q", "あっ", got, "axtu")
	}
}

func TestTransliterateLatin(t *testing.T) {
	got := Transliterate("neko")
	if got != "" {
		t.Errorf("Transliterate(Latin) = %q, want empty string", got)
	}
}

func TestTransliterateKanjiOnly(t *testing.T) {
	got := Transliterate("猫")
	if got != "" {
		t.Errorf("Transliterate(%q) = %q, want empty string", "猫", got)
	}
}

func TestDetectScript(t *testing.T) {
	tests := []struct {
		input string
		want  Script
	}{
		{"ねこ", ScriptKana},
		{"ネコ", ScriptKana},
		{"猫", ScriptKanji},
		{"お茶", ScriptKana},
		{"cat", ScriptLatin},
	}
	for _, tt := range tests {
		if got := DetectScript(tt.input); got != tt.want {
			t.Errorf("DetectScript(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
