package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AquaBottle: Launch", "AquaBottle- Launch"},
		{"a/b\\c", "a-b-c"},
		{"what?", "what"},
		{"  spaced  ", "spaced"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Aqua Bottle", "aqua_bottle"},
		{"MIXED-case_99", "mixed-case_99"},
		{"日本語", "unknown"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("Truncate short = %q", got)
	}
	if got := Truncate("hello world", 8); got != "hello w…" {
		t.Fatalf("Truncate long = %q", got)
	}
	if got := Truncate("abc", 2); got != "ab" {
		t.Fatalf("Truncate tiny = %q", got)
	}
	if got := Truncate("こんにちは世界", 5); got != "こんにち…" {
		t.Fatalf("Truncate runes = %q", got)
	}
}
