package cleantext

import (
	"strings"
	"testing"
	"time"
)

// --- CleanWithStats Tests ---

func TestCleanWithStats(t *testing.T) {
	cfg := configure(func(c *Config) {
		c.NoURLs = true
		c.NoPunct = true
		c.Exceptions = []string{"drive-thru"}
	})
	c := mustNew(t, cfg)

	input := "Visit http://wikipedia.org/ for drive-thru info!"
	result := c.CleanWithStats(input)
	if result.Error != nil {
		t.Fatalf("CleanWithStats() error = %v", result.Error)
	}

	want, _ := c.Clean(input)
	if result.Text != want {
		t.Errorf("Text = %q, want %q", result.Text, want)
	}
	if result.Text != "visit <url> for drive-thru info" {
		t.Errorf("Text = %q", result.Text)
	}

	s := result.Stats
	if s.InputBytes != len(input) || s.OutputBytes != len(result.Text) {
		t.Errorf("bytes = %d -> %d, want %d -> %d", s.InputBytes, s.OutputBytes, len(input), len(result.Text))
	}
	if s.ProtectedSpans != 1 {
		t.Errorf("ProtectedSpans = %d, want 1", s.ProtectedSpans)
	}

	var names []string
	for _, st := range s.Stages {
		names = append(names, st.Name)
	}
	if strings.Join(names, ",") != strings.Join(c.Stages(), ",") {
		t.Errorf("stage stats %v, want %v", names, c.Stages())
	}
	if s.TotalDuration <= 0 {
		t.Error("TotalDuration should be positive")
	}
	if result.HasWarnings() {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestCleanWithStats_Warnings(t *testing.T) {
	c := mustNew(t, nil)
	result := c.CleanWithStats(`ends with a backslash \`)
	if !result.HasWarnings() {
		t.Fatal("expected a warning for an undecodable escape")
	}
	if w := result.Warnings[0]; w.Stage != StageFixUnicode {
		t.Errorf("warning stage = %q, want %q", w.Stage, StageFixUnicode)
	}
	if result.Text != `ends with a backslash \` {
		t.Errorf("Text = %q, want input passed through", result.Text)
	}
}

// --- Stats Tests ---

func TestStats_ReductionPercent(t *testing.T) {
	tests := []struct {
		in, out int
		want    float64
	}{
		{0, 0, 0},
		{100, 50, 50},
		{100, 100, 0},
		{200, 150, 25},
	}
	for _, tt := range tests {
		s := &Stats{InputBytes: tt.in, OutputBytes: tt.out}
		if got := s.ReductionPercent(); got != tt.want {
			t.Errorf("ReductionPercent(%d, %d) = %v, want %v", tt.in, tt.out, got, tt.want)
		}
	}
}

func TestStats_Add(t *testing.T) {
	total := &Stats{}
	a := NewStats()
	a.InputBytes, a.OutputBytes, a.ProtectedSpans = 10, 8, 1
	a.RecordStage("lower", time.Millisecond, 8)
	b := NewStats()
	b.InputBytes, b.OutputBytes = 20, 10
	b.RecordStage("lower", 2*time.Millisecond, 10)
	b.RecordStage("whitespace", time.Millisecond, 10)

	total.Add(a)
	total.Add(b)
	total.Add(nil)

	if total.Texts != 2 || total.InputBytes != 30 || total.OutputBytes != 18 || total.ProtectedSpans != 1 {
		t.Errorf("Add() totals = %+v", total)
	}
	if len(total.Stages) != 2 || total.Stages[0].Duration != 3*time.Millisecond {
		t.Errorf("Add() stages = %+v", total.Stages)
	}
}

func TestStats_String(t *testing.T) {
	s := NewStats()
	s.InputBytes, s.OutputBytes = 100, 80
	s.RecordStage("lower", time.Millisecond, 80)
	out := s.String()
	for _, want := range []string{"100 -> 80 bytes", "20.0% reduction", "lower=1ms", "Timing:"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() = %q, missing %q", out, want)
		}
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Stage: "fix_unicode", Message: "left alone", Context: "x"}
	if got := w.String(); got != "[fix_unicode] left alone (context: x)" {
		t.Errorf("String() = %q", got)
	}
	w.Context = ""
	if got := w.String(); got != "[fix_unicode] left alone" {
		t.Errorf("String() = %q", got)
	}
}
