package cleantext

import (
	"fmt"
	"strings"
	"time"
)

// StageStat is the timing of one pass.
type StageStat struct {
	Name        string        `json:"name"`
	Duration    time.Duration `json:"duration_ns"`
	OutputBytes int           `json:"output_bytes"`
}

// Stats captures metrics about what the cleaner did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	// ProtectedSpans counts the exception matches kept verbatim.
	ProtectedSpans int `json:"protected_spans"`

	// Stages lists every pass that ran, in order.
	Stages []StageStat `json:"stages"`

	// Texts is the number of texts the stats cover.
	Texts int `json:"texts"`

	TotalDuration time.Duration `json:"total_duration_ns"`
}

// NewStats creates an empty Stats for one text.
func NewStats() *Stats {
	return &Stats{Texts: 1}
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// RecordStage appends the timing of one pass.
func (s *Stats) RecordStage(name string, d time.Duration, outputBytes int) {
	s.Stages = append(s.Stages, StageStat{Name: name, Duration: d, OutputBytes: outputBytes})
}

// Add folds other into s. Stage durations are summed by name.
func (s *Stats) Add(other *Stats) {
	if other == nil {
		return
	}
	s.InputBytes += other.InputBytes
	s.OutputBytes += other.OutputBytes
	s.ProtectedSpans += other.ProtectedSpans
	s.Texts += other.Texts
	s.TotalDuration += other.TotalDuration
	for _, st := range other.Stages {
		found := false
		for i := range s.Stages {
			if s.Stages[i].Name == st.Name {
				s.Stages[i].Duration += st.Duration
				s.Stages[i].OutputBytes += st.OutputBytes
				found = true
				break
			}
		}
		if !found {
			s.Stages = append(s.Stages, st)
		}
	}
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent())

	if s.Texts > 1 {
		fmt.Fprintf(&sb, "Texts: %d\n", s.Texts)
	}
	if s.ProtectedSpans > 0 {
		fmt.Fprintf(&sb, "Protected spans: %d\n", s.ProtectedSpans)
	}

	if len(s.Stages) > 0 {
		parts := make([]string, 0, len(s.Stages))
		for _, st := range s.Stages {
			parts = append(parts, fmt.Sprintf("%s=%v", st.Name, st.Duration.Round(time.Microsecond)))
		}
		sb.WriteString("Stages: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Timing: total=%v\n", s.TotalDuration.Round(time.Microsecond))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleaning.
type Warning struct {
	Stage   string `json:"stage"`   // pass that raised it, e.g. "fix_unicode"
	Message string `json:"message"` // Human-readable description
	Context string `json:"context"` // Offending input, shortened
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Stage, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Stage, w.Message)
}

// Result contains the output of a cleaning operation.
type Result struct {
	// Text is the cleaned output. It is empty when Error is set.
	Text string `json:"text"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty"`

	// Error is set when a pass failed. No partial text is returned.
	Error error `json:"-"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(stage, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Stage:   stage,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
