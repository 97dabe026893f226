// Package cleantext normalizes noisy, human-authored text for NLP
// pipelines.
//
// A Cleaner runs a fixed sequence of passes selected by a Config:
//
//	protect exceptions -> fix unicode -> currency -> code -> transliterate
//	-> urls -> emails -> phone numbers -> ip addresses -> file paths
//	-> numbers -> digits -> punctuation -> emoji -> lower -> whitespace
//	-> restore exceptions
//
// The order is part of the contract: code spans are replaced before URLs
// and numbers see them, numbers before digits, and protected spans are put
// back only after whitespace has been normalized. Every pass is also
// exported as a standalone function.
package cleantext

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/cleantext/internal/logger"
	"github.com/jmylchreest/cleantext/pkg/cleaner"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/guard"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/patterns"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/translit"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/unicodefix"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/whitespace"
)

// Stage names, as reported in Stats and by Stages.
const (
	StageFixUnicode = "fix_unicode"
	StageCurrency   = "currency"
	StageCode       = "code"
	StageToASCII    = "to_ascii"
	StageURLs       = "urls"
	StageEmails     = "emails"
	StagePhone      = "phone_numbers"
	StageIP         = "ip_addresses"
	StageFilePaths  = "file_paths"
	StageNumbers    = "numbers"
	StageDigits     = "digits"
	StagePunct      = "punct"
	StageEmoji      = "emoji"
	StageLower      = "lower"
	StageWhitespace = "whitespace"
)

// Cleaner is the configured pipeline. It implements cleaner.Cleaner and is
// safe for concurrent use.
type Cleaner struct {
	config     Config
	lang       translit.Language
	exceptions []*regexp.Regexp
	translit   *translit.Translit
	stages     *cleaner.ChainCleaner
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithTransliterator replaces the default unidecode transliterator.
func WithTransliterator(t translit.Transliterator) Option {
	return func(c *Cleaner) {
		c.translit = translit.New(t)
	}
}

// New validates config and builds the pipeline. If config is nil,
// DefaultConfig() is used. Exception patterns are compiled here, so a bad
// pattern fails New rather than the first Clean.
func New(config *Config, opts ...Option) (*Cleaner, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	lang, err := config.Language()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	exceptions, err := guard.Compile(config.Exceptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidException, err)
	}

	c := &Cleaner{
		config:     *config,
		lang:       lang,
		exceptions: exceptions,
		translit:   translit.New(nil),
	}
	c.config.Exceptions = slices.Clone(config.Exceptions)
	for _, opt := range opts {
		opt(c)
	}
	c.stages = cleaner.NewChain(c.buildStages()...)

	if c.config.ToASCII && c.translit.Name() == (translit.Fallback{}).Name() {
		logger.Warn("cleantext: using fallback transliterator, letters without a decomposition are dropped")
	}
	logger.Debug("cleantext: pipeline ready",
		"stages", c.stages.Name(),
		"lang", string(lang),
		"exceptions", len(exceptions),
		"transliterator", c.translit.Name())

	return c, nil
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "cleantext"
}

// Config returns a copy of the configuration the cleaner was built with.
func (c *Cleaner) Config() *Config {
	cfg := c.config
	cfg.Exceptions = slices.Clone(c.config.Exceptions)
	return &cfg
}

// Stages returns the names of the passes that run, in order.
func (c *Cleaner) Stages() []string {
	stages := c.stages.Cleaners()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name()
	}
	return names
}

// Clean runs the pipeline on text.
func (c *Cleaner) Clean(text string) (string, error) {
	guarded, records, err := guard.Protect(text, c.exceptions)
	if err != nil {
		return "", err
	}
	out, err := c.stages.Clean(guarded)
	if err != nil {
		return "", err
	}
	return guard.Restore(out, records), nil
}

// CleanWithStats runs the pipeline and times every pass.
func (c *Cleaner) CleanWithStats(text string) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(text)
	defer func() {
		result.Stats.OutputBytes = len(result.Text)
		result.Stats.TotalDuration = time.Since(startTime)
	}()

	guarded, records, err := guard.Protect(text, c.exceptions)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.ProtectedSpans = len(records)
	c.collectWarnings(text, result)

	for _, stage := range c.stages.Cleaners() {
		stageStart := time.Now()
		guarded, err = stage.Clean(guarded)
		result.Stats.RecordStage(stage.Name(), time.Since(stageStart), len(guarded))
		if err != nil {
			result.Error = fmt.Errorf("stage %s: %w", stage.Name(), err)
			return result
		}
	}
	result.Text = guard.Restore(guarded, records)

	if logger.Enabled(slog.LevelDebug) {
		logger.Debug("cleantext: cleaned",
			"input_bytes", result.Stats.InputBytes,
			"output_bytes", len(result.Text),
			"protected", len(records),
			"duration", time.Since(startTime))
	}
	return result
}

// collectWarnings notes input the best-effort passes will quietly leave
// as it is.
func (c *Cleaner) collectWarnings(text string, result *Result) {
	if c.config.FixUnicode && strings.Contains(text, `\`) {
		if _, ok := unicodefix.DecodeEscapes(text); !ok {
			result.AddWarning(StageFixUnicode, "escape sequences left undecoded", shorten(text))
		}
	}
	if c.config.ToASCII && c.translit.Name() == (translit.Fallback{}).Name() {
		result.AddWarning(StageToASCII, "fallback transliterator in use", "")
	}
}

func shorten(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xc0 != 0x80
}

// buildStages lists the enabled passes in pipeline order.
func (c *Cleaner) buildStages() []cleaner.Cleaner {
	cfg := c.config
	var stages []cleaner.Cleaner
	add := func(name string, fn func(string) string) {
		stages = append(stages, cleaner.Func(name, fn))
	}

	if cfg.FixUnicode {
		form := cfg.Form()
		add(StageFixUnicode, func(t string) string { return FixBadUnicode(t, form) })
	}
	if cfg.NoCurrencySymbols {
		if cfg.CurrencyAsCode {
			add(StageCurrency, CurrencySymbolsToCodes)
		} else {
			token := cfg.ReplaceWithCurrencySymbol
			add(StageCurrency, func(t string) string { return patterns.Currency.ReplaceAll(t, token) })
		}
	}
	if cfg.NoCode {
		add(StageCode, replacer(ReplaceCode, cfg.ReplaceWithCode))
	}
	if cfg.ToASCII {
		x, lang, keepEmoji := c.translit, c.lang, !cfg.NoEmoji
		add(StageToASCII, func(t string) string { return x.Transliterate(t, lang, keepEmoji) })
	}
	if cfg.NoURLs {
		add(StageURLs, replacer(ReplaceURLs, cfg.ReplaceWithURL))
	}
	if cfg.NoEmails {
		add(StageEmails, replacer(ReplaceEmails, cfg.ReplaceWithEmail))
	}
	if cfg.NoPhoneNumbers {
		add(StagePhone, replacer(ReplacePhoneNumbers, cfg.ReplaceWithPhoneNumber))
	}
	if cfg.NoIPAddresses {
		add(StageIP, replacer(ReplaceIPAddresses, cfg.ReplaceWithIPAddress))
	}
	if cfg.NoFilePaths {
		add(StageFilePaths, replacer(ReplaceFilePaths, cfg.ReplaceWithFilePath))
	}
	if cfg.NoNumbers {
		add(StageNumbers, replacer(ReplaceNumbers, cfg.ReplaceWithNumber))
	}
	if cfg.NoDigits {
		add(StageDigits, replacer(ReplaceDigits, cfg.ReplaceWithDigit))
	}
	if cfg.NoPunct {
		add(StagePunct, replacer(ReplacePunct, cfg.ReplaceWithPunct))
	}
	// ToASCII already removed emoji when NoEmoji is set
	if cfg.NoEmoji && !cfg.ToASCII {
		add(StageEmoji, RemoveEmoji)
	}
	if cfg.Lower {
		// a Caser keeps state, so each call gets its own
		add(StageLower, func(t string) string { return cases.Lower(language.Und).String(t) })
	}
	if cfg.NormalizeWhitespace {
		opts := whitespace.Options{
			NoLineBreaks:      cfg.NoLineBreaks,
			StripLines:        cfg.StripLines,
			KeepTwoLineBreaks: cfg.KeepTwoLineBreaks,
		}
		add(StageWhitespace, func(t string) string { return whitespace.Normalize(t, opts) })
	}
	return stages
}

func replacer(fn func(text, replaceWith string) string, token string) func(string) string {
	return func(t string) string { return fn(t, token) }
}
