package quiz

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Ｔｅｓｔ ", "test"},
		{"test", "test"},
		{"TEST", "test"},
		{"  hello   world ", "helloworld"},
		{"東京　タワー", "東京タワー"},
		{"１２３", "123"},
		{"ＡＢＣ１２３", "abc123"},
		{"tab\tand\nnewline", "tabandnewline"},
		{"", ""},
		{"！", "！"}, // only letters and digits are narrowed
		{"STRAßE", "straße"},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		entered   string
		canonical string
		want      bool
	}{
		{" Ｔｅｓｔ ", "test", true},
		{"Tokyo", "tokyo", true},
		{"ni hon", "nihon", true},
		{"２０２４", "2024", true},
		{"tokio", "tokyo", false},
		{"1", "one", false},
		{"strasse", "Straße", false},
	}

	for _, tc := range tests {
		got := Matches(tc.entered, tc.canonical)
		if got != tc.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tc.entered, tc.canonical, got, tc.want)
		}
	}
}
