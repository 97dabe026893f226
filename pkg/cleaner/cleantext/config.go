package cleantext

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/translit"
)

// Config selects the passes Clean runs and the token each pass writes.
// A Config is never modified by the cleaner that uses it.
type Config struct {
	// === Unicode ===

	// FixUnicode repairs mojibake, escape sequences and HTML entities and
	// normalizes to NormalizationForm.
	FixUnicode bool `json:"fix_unicode" yaml:"fix_unicode" mapstructure:"fix_unicode"`

	// NormalizationForm is one of NFC, NFKC, NFD or NFKD. Empty means NFC.
	NormalizationForm string `json:"normalization_form,omitempty" yaml:"normalization_form,omitempty" mapstructure:"normalization_form" validate:"omitempty,oneof=NFC NFKC NFD NFKD"`

	// ToASCII transliterates to the closest ASCII spelling.
	ToASCII bool `json:"to_ascii" yaml:"to_ascii" mapstructure:"to_ascii"`

	// Lang selects the letters ToASCII keeps, as a BCP 47 tag ("de", "sv-SE").
	Lang string `json:"lang" yaml:"lang" mapstructure:"lang" validate:"langtag"`

	// Lower lower-cases the text.
	Lower bool `json:"lower" yaml:"lower" mapstructure:"lower"`

	// === Whitespace ===

	NormalizeWhitespace bool `json:"normalize_whitespace" yaml:"normalize_whitespace" mapstructure:"normalize_whitespace"`
	NoLineBreaks        bool `json:"no_line_breaks" yaml:"no_line_breaks" mapstructure:"no_line_breaks"`
	StripLines          bool `json:"strip_lines" yaml:"strip_lines" mapstructure:"strip_lines"`
	KeepTwoLineBreaks   bool `json:"keep_two_line_breaks" yaml:"keep_two_line_breaks" mapstructure:"keep_two_line_breaks"`

	// === Replacement passes ===

	NoCode            bool `json:"no_code" yaml:"no_code" mapstructure:"no_code"`
	NoURLs            bool `json:"no_urls" yaml:"no_urls" mapstructure:"no_urls"`
	NoEmails          bool `json:"no_emails" yaml:"no_emails" mapstructure:"no_emails"`
	NoPhoneNumbers    bool `json:"no_phone_numbers" yaml:"no_phone_numbers" mapstructure:"no_phone_numbers"`
	NoIPAddresses     bool `json:"no_ip_addresses" yaml:"no_ip_addresses" mapstructure:"no_ip_addresses"`
	NoFilePaths       bool `json:"no_file_paths" yaml:"no_file_paths" mapstructure:"no_file_paths"`
	NoNumbers         bool `json:"no_numbers" yaml:"no_numbers" mapstructure:"no_numbers"`
	NoDigits          bool `json:"no_digits" yaml:"no_digits" mapstructure:"no_digits"`
	NoCurrencySymbols bool `json:"no_currency_symbols" yaml:"no_currency_symbols" mapstructure:"no_currency_symbols"`
	NoPunct           bool `json:"no_punct" yaml:"no_punct" mapstructure:"no_punct"`

	// NoEmoji drops emoji. When false, ToASCII carries them through unchanged.
	NoEmoji bool `json:"no_emoji" yaml:"no_emoji" mapstructure:"no_emoji"`

	// CurrencyAsCode writes ISO 4217 codes ("USD") instead of
	// ReplaceWithCurrencySymbol.
	CurrencyAsCode bool `json:"currency_as_code" yaml:"currency_as_code" mapstructure:"currency_as_code"`

	// === Replacement tokens ===
	// An empty token deletes the match.

	ReplaceWithURL            string `json:"replace_with_url" yaml:"replace_with_url" mapstructure:"replace_with_url" validate:"nocontrol"`
	ReplaceWithEmail          string `json:"replace_with_email" yaml:"replace_with_email" mapstructure:"replace_with_email" validate:"nocontrol"`
	ReplaceWithPhoneNumber    string `json:"replace_with_phone_number" yaml:"replace_with_phone_number" mapstructure:"replace_with_phone_number" validate:"nocontrol"`
	ReplaceWithIPAddress      string `json:"replace_with_ip_address" yaml:"replace_with_ip_address" mapstructure:"replace_with_ip_address" validate:"nocontrol"`
	ReplaceWithFilePath       string `json:"replace_with_file_path" yaml:"replace_with_file_path" mapstructure:"replace_with_file_path" validate:"nocontrol"`
	ReplaceWithNumber         string `json:"replace_with_number" yaml:"replace_with_number" mapstructure:"replace_with_number" validate:"nocontrol"`
	ReplaceWithDigit          string `json:"replace_with_digit" yaml:"replace_with_digit" mapstructure:"replace_with_digit" validate:"nocontrol"`
	ReplaceWithCurrencySymbol string `json:"replace_with_currency_symbol" yaml:"replace_with_currency_symbol" mapstructure:"replace_with_currency_symbol" validate:"nocontrol"`
	ReplaceWithCode           string `json:"replace_with_code" yaml:"replace_with_code" mapstructure:"replace_with_code" validate:"nocontrol"`
	ReplaceWithPunct          string `json:"replace_with_punct" yaml:"replace_with_punct" mapstructure:"replace_with_punct" validate:"nocontrol"`

	// Exceptions are regular expressions whose matches pass through every
	// stage verbatim. Earlier patterns win overlaps.
	Exceptions []string `json:"exceptions,omitempty" yaml:"exceptions,omitempty" mapstructure:"exceptions" validate:"dive,required"`
}

// DefaultConfig returns the defaults of clean: unicode repair, ASCII
// conversion, lower-casing and whitespace normalization, no replacements.
func DefaultConfig() *Config {
	return &Config{
		FixUnicode:          true,
		NormalizationForm:   "NFC",
		ToASCII:             true,
		Lang:                "en",
		Lower:               true,
		NormalizeWhitespace: true,
		StripLines:          true,

		ReplaceWithURL:            "<URL>",
		ReplaceWithEmail:          "<EMAIL>",
		ReplaceWithPhoneNumber:    "<PHONE>",
		ReplaceWithIPAddress:      "<IP>",
		ReplaceWithFilePath:       "<FILE_PATH>",
		ReplaceWithNumber:         "<NUMBER>",
		ReplaceWithDigit:          "0",
		ReplaceWithCurrencySymbol: "<CUR>",
		ReplaceWithCode:           "<CODE>",
		ReplaceWithPunct:          "",
	}
}

// PresetMinimal only repairs unicode and normalizes whitespace. Case,
// spelling and every entity are left alone.
func PresetMinimal() *Config {
	cfg := DefaultConfig()
	cfg.ToASCII = false
	cfg.Lower = false
	return cfg
}

// PresetAggressive enables every replacement pass and drops punctuation
// and emoji.
func PresetAggressive() *Config {
	cfg := DefaultConfig()
	cfg.NoLineBreaks = true
	cfg.NoCode = true
	cfg.NoURLs = true
	cfg.NoEmails = true
	cfg.NoPhoneNumbers = true
	cfg.NoIPAddresses = true
	cfg.NoFilePaths = true
	cfg.NoNumbers = true
	cfg.NoDigits = true
	cfg.NoCurrencySymbols = true
	cfg.NoPunct = true
	cfg.NoEmoji = true
	return cfg
}

// Merge returns a copy of this config with other overlaid. The receiver is
// not modified.
// Enabled booleans and non-empty strings from other override this config.
// A false boolean in other never turns a pass off, so Merge cannot disable
// a pass enabled here; set the field on the result for that.
// Exceptions are appended, not replaced.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	merged.Exceptions = append([]string(nil), c.Exceptions...)
	if other == nil {
		return &merged
	}

	flags := []struct {
		dst *bool
		src bool
	}{
		{&merged.FixUnicode, other.FixUnicode},
		{&merged.ToASCII, other.ToASCII},
		{&merged.Lower, other.Lower},
		{&merged.NormalizeWhitespace, other.NormalizeWhitespace},
		{&merged.NoLineBreaks, other.NoLineBreaks},
		{&merged.StripLines, other.StripLines},
		{&merged.KeepTwoLineBreaks, other.KeepTwoLineBreaks},
		{&merged.NoCode, other.NoCode},
		{&merged.NoURLs, other.NoURLs},
		{&merged.NoEmails, other.NoEmails},
		{&merged.NoPhoneNumbers, other.NoPhoneNumbers},
		{&merged.NoIPAddresses, other.NoIPAddresses},
		{&merged.NoFilePaths, other.NoFilePaths},
		{&merged.NoNumbers, other.NoNumbers},
		{&merged.NoDigits, other.NoDigits},
		{&merged.NoCurrencySymbols, other.NoCurrencySymbols},
		{&merged.NoPunct, other.NoPunct},
		{&merged.NoEmoji, other.NoEmoji},
		{&merged.CurrencyAsCode, other.CurrencyAsCode},
	}
	for _, f := range flags {
		if f.src {
			*f.dst = true
		}
	}

	strs := []struct {
		dst *string
		src string
	}{
		{&merged.NormalizationForm, other.NormalizationForm},
		{&merged.Lang, other.Lang},
		{&merged.ReplaceWithURL, other.ReplaceWithURL},
		{&merged.ReplaceWithEmail, other.ReplaceWithEmail},
		{&merged.ReplaceWithPhoneNumber, other.ReplaceWithPhoneNumber},
		{&merged.ReplaceWithIPAddress, other.ReplaceWithIPAddress},
		{&merged.ReplaceWithFilePath, other.ReplaceWithFilePath},
		{&merged.ReplaceWithNumber, other.ReplaceWithNumber},
		{&merged.ReplaceWithDigit, other.ReplaceWithDigit},
		{&merged.ReplaceWithCurrencySymbol, other.ReplaceWithCurrencySymbol},
		{&merged.ReplaceWithCode, other.ReplaceWithCode},
		{&merged.ReplaceWithPunct, other.ReplaceWithPunct},
	}
	for _, s := range strs {
		if s.src != "" {
			*s.dst = s.src
		}
	}

	// Append exceptions (deduplicated, order kept)
	seen := make(map[string]bool, len(merged.Exceptions))
	for _, e := range merged.Exceptions {
		seen[e] = true
	}
	for _, e := range other.Exceptions {
		if !seen[e] {
			merged.Exceptions = append(merged.Exceptions, e)
			seen[e] = true
		}
	}

	return &merged
}

// Validate checks field values. It does not compile Exceptions; New does.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s fails %q (got %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

// Language resolves Lang to its transliteration profile.
func (c *Config) Language() (translit.Language, error) {
	return translit.ParseLanguage(c.Lang)
}

// Form returns the normalization form for NormalizationForm.
func (c *Config) Form() norm.Form {
	switch c.NormalizationForm {
	case "NFKC":
		return norm.NFKC
	case "NFD":
		return norm.NFD
	case "NFKD":
		return norm.NFKD
	default:
		return norm.NFC
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("langtag", func(fl validator.FieldLevel) bool {
		_, err := translit.ParseLanguage(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("nocontrol", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if unicode.IsControl(r) {
				return false
			}
		}
		return true
	})
	return v
}
