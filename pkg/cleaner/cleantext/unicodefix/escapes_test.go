package unicodefix

import "testing"

func TestDecodeEscapes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"no escapes", "plain", "plain", true},
		{"simple escapes", `a\tb\nc`, "a\tb\nc", true},
		{"quotes and backslash", `\"x\' \\`, `"x' \`, true},
		{"hex byte", `\x41\xe9`, "Aé", true},
		{"octal", `\101\0`, "A\x00", true},
		{"basic plane", `caf\u00e9`, "café", true},
		{"astral plane", `\U0001F600`, "😀", true},
		{"surrogate pair", `\ud83d\ude00`, "😀", true},
		{"unknown escape kept", `\q and \d`, `\q and \d`, true},
		{"line continuation", "a\\\nb", "ab", true},
		{"trailing backslash", `abc\`, `abc\`, false},
		{"truncated hex", `\x4`, `\x4`, false},
		{"truncated unicode", `\u12`, `\u12`, false},
		{"named escape", `\N{DASH}`, `\N{DASH}`, false},
		{"lone high surrogate", `\ud83d!`, `\ud83d!`, false},
		{"lone low surrogate", `\ude00`, `\ude00`, false},
		{"out of range", `\U00110000`, `\U00110000`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeEscapes(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("DecodeEscapes(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("DecodeEscapes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFix_MalformedEscapeLeavesText(t *testing.T) {
	in := `path\N{x} stays`
	if got := Fix(in); got != in {
		t.Errorf("Fix(%q) = %q, want unchanged", in, got)
	}
}
