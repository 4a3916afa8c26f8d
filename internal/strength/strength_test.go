package strength

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"aaaaaaaa", 2},
		{"Aa1!aaaa", 6},
		{"Aa1!", 4},
		{"aaaaaaaaaaaa", 3},
		{"ABCDEFGHIJKL1", 4},
		{"пароль", 1},
	}
	for _, tc := range cases {
		if got := Score(tc.in); got != tc.want {
			t.Fatalf("Score(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestScoreNeverExceedsMax(t *testing.T) {
	if got := Score("Abcdefgh1234!@#$"); got != MaxScore {
		t.Fatalf("expected %d, got %d", MaxScore, got)
	}
}

func TestLabel(t *testing.T) {
	cases := map[int]string{
		-1: "Very weak",
		0:  "Very weak",
		1:  "Weak",
		2:  "Medium",
		3:  "Good",
		4:  "Strong",
		5:  "Very strong",
		6:  "Very strong",
	}
	for score, want := range cases {
		if got := Label(score); got != want {
			t.Fatalf("Label(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	if est := Evaluate(""); est.Entropy != 0 || est.CrackTime != "" {
		t.Fatalf("expected zero estimate for empty password, got %+v", est)
	}
	weak := Evaluate("password")
	strong := Evaluate("q8#Vz!r2Lm@w9Tx$")
	if strong.Entropy <= weak.Entropy {
		t.Fatalf("expected random password to out-score dictionary word: %+v vs %+v", strong, weak)
	}
	if strong.CrackTime == "" {
		t.Fatalf("expected crack time display")
	}
}
