package guard

import (
	"errors"
	"regexp"
	"regexp/syntax"
	"strings"
	"testing"
)

func mustCompile(t *testing.T, exprs ...string) []*regexp.Regexp {
	t.Helper()
	res, err := Compile(exprs)
	if err != nil {
		t.Fatalf("Compile(%v) error = %v", exprs, err)
	}
	return res
}

// --- Protect Tests ---

func TestProtect_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		exprs    []string
		wantRecs int
	}{
		{"no patterns", "drive-thru is great", nil, 0},
		{"single match", "drive-thru is great", []string{"drive-thru"}, 1},
		{"repeated match", "drive-thru and drive-thru", []string{"drive-thru"}, 2},
		{"no match", "walk in", []string{"drive-thru"}, 0},
		{"two patterns", "C++ and C#", []string{`C\+\+`, `C#`}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guarded, recs, err := Protect(tt.input, mustCompile(t, tt.exprs...))
			if err != nil {
				t.Fatalf("Protect() error = %v", err)
			}
			if len(recs) != tt.wantRecs {
				t.Errorf("Protect() records = %d, want %d", len(recs), tt.wantRecs)
			}
			for _, r := range recs {
				if strings.Contains(guarded, r.Original) {
					t.Errorf("guarded text %q still contains %q", guarded, r.Original)
				}
			}
			if got := Restore(guarded, recs); got != tt.input {
				t.Errorf("Restore() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestProtect_PlaceholderShape(t *testing.T) {
	guarded, recs, err := Protect("a drive-thru b", mustCompile(t, "drive-thru"))
	if err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	tok := recs[0].Token
	for _, r := range tok {
		if r < 'a' || r > 'z' {
			t.Fatalf("placeholder %q has non lower-case letter %q", tok, r)
		}
	}
	if guarded != "a "+tok+" b" {
		t.Errorf("guarded = %q", guarded)
	}
	if recs[0].Offset != 2 || recs[0].Length != len("drive-thru") || recs[0].Pattern != 0 {
		t.Errorf("record span = %+v", recs[0])
	}
}

func TestProtect_FirstPatternWins(t *testing.T) {
	input := "new york city"
	guarded, recs, err := Protect(input, mustCompile(t, "new york", "york city"))
	if err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Original != "new york" {
		t.Fatalf("records = %+v, want only %q", recs, "new york")
	}
	if !strings.HasSuffix(guarded, " city") {
		t.Errorf("guarded = %q", guarded)
	}
	if got := Restore(guarded, recs); got != input {
		t.Errorf("Restore() = %q, want %q", got, input)
	}
}

func TestProtect_LaterPatternSwallowsPlaceholder(t *testing.T) {
	// the second pattern matches across the first placeholder
	input := "x ab y"
	guarded, recs, err := Protect(input, mustCompile(t, "ab", `x \w+ y`))
	if err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %+v, want 2", recs)
	}
	if got := Restore(guarded, recs); got != input {
		t.Errorf("Restore() = %q, want %q", got, input)
	}
}

func TestRestore_AfterTextMoved(t *testing.T) {
	input := "a drive-thru b"
	guarded, recs, err := Protect(input, mustCompile(t, "drive-thru"))
	if err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	// spans shift once earlier text grows, the token still restores
	moved := "prefix text " + strings.ToUpper(guarded[:1]) + guarded[1:]
	want := "prefix text A drive-thru b"
	if got := Restore(moved, recs); got != want {
		t.Errorf("Restore() = %q, want %q", got, want)
	}
}

func TestProtect_SaltedNamespace(t *testing.T) {
	input := "ZXQCLEANTEXTGUARD drive-thru"
	guarded, recs, err := Protect(input, mustCompile(t, "drive-thru"))
	if err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	if !strings.HasPrefix(recs[0].Token, basePrefix+"z") {
		t.Errorf("token %q should extend the prefix past the text", recs[0].Token)
	}
	if got := Restore(guarded, recs); got != input {
		t.Errorf("Restore() = %q, want %q", got, input)
	}
}

func TestProtect_EmptyMatchesIgnored(t *testing.T) {
	guarded, recs, err := Protect("abc", mustCompile(t, "x*"))
	if err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	if guarded != "abc" || len(recs) != 0 {
		t.Errorf("Protect() = %q, %v", guarded, recs)
	}
}

// --- Compile Tests ---

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile([]string{"ok", "(unclosed"})
	if err == nil {
		t.Fatal("Compile() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "exception 1") || !strings.Contains(err.Error(), "(unclosed") {
		t.Errorf("error %q should name the failing pattern", err)
	}
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) {
		t.Errorf("error %v should wrap a *syntax.Error", err)
	}
}

func TestEncodeCounter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "aaaaa"},
		{1, "aaaab"},
		{25, "aaaaz"},
		{26, "aaaba"},
		{maxRecords - 1, "zzzzz"},
	}
	for _, tt := range tests {
		if got := encodeCounter(tt.n); got != tt.want {
			t.Errorf("encodeCounter(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
