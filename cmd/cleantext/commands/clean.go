package commands

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cleantext/internal/logger"
	"github.com/jmylchreest/cleantext/internal/output"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [files...]",
	Short: "Clean text from files or stdin",
	Long: `Clean one or more files, or stdin when no file (or "-") is given.

Each file is one text. With --lines every input line is a text of its own.
Options start from --preset and can be set by flag, by the config file or
by CLEANTEXT_* environment variables.`,
	Example: `  cleantext clean README.md
  cleantext clean --preset aggressive --format jsonl corpus/*.txt
  echo "Visit https://example.com" | cleantext clean --no-urls`,
	RunE: runClean,
}

type boolOption struct {
	key   string
	usage string
	field func(*cleantext.Config) *bool
}

type stringOption struct {
	key   string
	usage string
	field func(*cleantext.Config) *string
}

var boolOptions = []boolOption{
	{"fix_unicode", "repair mojibake, escapes and HTML entities", func(c *cleantext.Config) *bool { return &c.FixUnicode }},
	{"to_ascii", "transliterate to ASCII", func(c *cleantext.Config) *bool { return &c.ToASCII }},
	{"lower", "lower-case the text", func(c *cleantext.Config) *bool { return &c.Lower }},
	{"normalize_whitespace", "collapse runs of whitespace", func(c *cleantext.Config) *bool { return &c.NormalizeWhitespace }},
	{"no_line_breaks", "join everything onto one line", func(c *cleantext.Config) *bool { return &c.NoLineBreaks }},
	{"strip_lines", "trim every line", func(c *cleantext.Config) *bool { return &c.StripLines }},
	{"keep_two_line_breaks", "keep paragraph breaks", func(c *cleantext.Config) *bool { return &c.KeepTwoLineBreaks }},
	{"no_code", "replace code spans", func(c *cleantext.Config) *bool { return &c.NoCode }},
	{"no_urls", "replace URLs", func(c *cleantext.Config) *bool { return &c.NoURLs }},
	{"no_emails", "replace email addresses", func(c *cleantext.Config) *bool { return &c.NoEmails }},
	{"no_phone_numbers", "replace phone numbers", func(c *cleantext.Config) *bool { return &c.NoPhoneNumbers }},
	{"no_ip_addresses", "replace IP addresses", func(c *cleantext.Config) *bool { return &c.NoIPAddresses }},
	{"no_file_paths", "replace file paths", func(c *cleantext.Config) *bool { return &c.NoFilePaths }},
	{"no_numbers", "replace numbers", func(c *cleantext.Config) *bool { return &c.NoNumbers }},
	{"no_digits", "replace digits", func(c *cleantext.Config) *bool { return &c.NoDigits }},
	{"no_currency_symbols", "replace currency symbols", func(c *cleantext.Config) *bool { return &c.NoCurrencySymbols }},
	{"no_punct", "remove or replace punctuation", func(c *cleantext.Config) *bool { return &c.NoPunct }},
	{"no_emoji", "remove emoji", func(c *cleantext.Config) *bool { return &c.NoEmoji }},
	{"currency_as_code", "write ISO 4217 codes for currency symbols", func(c *cleantext.Config) *bool { return &c.CurrencyAsCode }},
}

var stringOptions = []stringOption{
	{"lang", "language whose letters survive ASCII conversion", func(c *cleantext.Config) *string { return &c.Lang }},
	{"normalization_form", "unicode form: NFC, NFKC, NFD or NFKD", func(c *cleantext.Config) *string { return &c.NormalizationForm }},
	{"replace_with_url", "URL token", func(c *cleantext.Config) *string { return &c.ReplaceWithURL }},
	{"replace_with_email", "email token", func(c *cleantext.Config) *string { return &c.ReplaceWithEmail }},
	{"replace_with_phone_number", "phone number token", func(c *cleantext.Config) *string { return &c.ReplaceWithPhoneNumber }},
	{"replace_with_ip_address", "IP address token", func(c *cleantext.Config) *string { return &c.ReplaceWithIPAddress }},
	{"replace_with_file_path", "file path token", func(c *cleantext.Config) *string { return &c.ReplaceWithFilePath }},
	{"replace_with_number", "number token", func(c *cleantext.Config) *string { return &c.ReplaceWithNumber }},
	{"replace_with_digit", "digit token", func(c *cleantext.Config) *string { return &c.ReplaceWithDigit }},
	{"replace_with_currency_symbol", "currency symbol token", func(c *cleantext.Config) *string { return &c.ReplaceWithCurrencySymbol }},
	{"replace_with_code", "code token", func(c *cleantext.Config) *string { return &c.ReplaceWithCode }},
	{"replace_with_punct", "punctuation token", func(c *cleantext.Config) *string { return &c.ReplaceWithPunct }},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	defaults := cleantext.DefaultConfig()
	flags := cleanCmd.Flags()

	flags.String("preset", "default", "base options: default, minimal or aggressive")
	for _, o := range boolOptions {
		flags.Bool(flagName(o.key), *o.field(defaults), o.usage)
	}
	for _, o := range stringOptions {
		flags.String(flagName(o.key), *o.field(defaults), o.usage)
	}
	flags.StringArrayP("exception", "e", nil, "regular expression to leave untouched (repeatable)")

	flags.Bool("lines", false, "treat every input line as a separate text")
	flags.IntP("jobs", "j", 1, "parallel workers (negative counts back from the number of CPUs)")
	flags.StringP("format", "f", "text", "output format: text, json, jsonl or yaml")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("pretty", true, "indent json output")
	flags.String("max-input-size", "64MB", "largest input accepted per file")
	flags.Bool("stats", false, "print size and stage timing to stderr")

	_ = viper.BindPFlag("preset", flags.Lookup("preset"))
	for _, o := range boolOptions {
		_ = viper.BindPFlag(o.key, flags.Lookup(flagName(o.key)))
	}
	for _, o := range stringOptions {
		_ = viper.BindPFlag(o.key, flags.Lookup(flagName(o.key)))
	}
	_ = viper.BindPFlag("exceptions", flags.Lookup("exception"))
	_ = viper.BindPFlag("lines", flags.Lookup("lines"))
	_ = viper.BindPFlag("jobs", flags.Lookup("jobs"))
	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("pretty", flags.Lookup("pretty"))
	_ = viper.BindPFlag("max_input_size", flags.Lookup("max-input-size"))
	_ = viper.BindPFlag("stats", flags.Lookup("stats"))
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	maxSize, err := humanize.ParseBytes(viper.GetString("max_input_size"))
	if err != nil {
		return fmt.Errorf("invalid max-input-size: %w", err)
	}

	lines := viper.GetBool("lines")
	inputs, err := readInputs(cmd.InOrStdin(), args, lines, int64(maxSize))
	if err != nil {
		return err
	}

	c, err := cleantext.New(cfg)
	if err != nil {
		return err
	}
	logger.Debug("cleaning", "texts", len(inputs), "stages", strings.Join(c.Stages(), ","))

	texts := make([]string, len(inputs))
	for i, in := range inputs {
		texts[i] = in.text
	}

	start := time.Now()
	cleaned, err := c.CleanTexts(ctx, texts, viper.GetInt("jobs"))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	if path := viper.GetString("output"); path != "" {
		f, err := os.Create(path) //#nosec G304 -- path comes from the command line
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	w, err := output.NewWriter(out, format,
		output.WithPretty(viper.GetBool("pretty")),
		output.WithBlankLines(!lines && len(inputs) > 1),
	)
	if err != nil {
		return err
	}

	records := make([]output.Record, len(cleaned))
	for i, text := range cleaned {
		records[i] = output.Record{Index: i, Source: inputs[i].source, Text: text}
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if viper.GetBool("stats") {
		printStats(c, texts, cleaned, elapsed)
	}
	return nil
}

// buildConfig starts from the preset and applies every option that was set
// by flag, environment or config file.
func buildConfig() (*cleantext.Config, error) {
	var cfg *cleantext.Config
	switch preset := strings.ToLower(viper.GetString("preset")); preset {
	case "", "default":
		cfg = cleantext.DefaultConfig()
	case "minimal":
		cfg = cleantext.PresetMinimal()
	case "aggressive":
		cfg = cleantext.PresetAggressive()
	default:
		return nil, fmt.Errorf("unknown preset: %s", preset)
	}

	for _, o := range boolOptions {
		if viper.IsSet(o.key) {
			*o.field(cfg) = viper.GetBool(o.key)
		}
	}
	for _, o := range stringOptions {
		if viper.IsSet(o.key) {
			*o.field(cfg) = viper.GetString(o.key)
		}
	}
	if viper.IsSet("exceptions") {
		cfg.Exceptions = viper.GetStringSlice("exceptions")
	}
	return cfg, nil
}

type input struct {
	source string
	text   string
}

func readInputs(stdin io.Reader, args []string, lines bool, maxSize int64) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	var inputs []input
	for _, path := range args {
		data, err := readInput(stdin, path, maxSize)
		if err != nil {
			return nil, err
		}
		source := path
		if path == "-" {
			source = ""
		}
		if !lines {
			inputs = append(inputs, input{source: source, text: string(data)})
			continue
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
		for sc.Scan() {
			inputs = append(inputs, input{source: source, text: sc.Text()})
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", displayName(path), err)
		}
	}
	return inputs, nil
}

func readInput(stdin io.Reader, path string, maxSize int64) ([]byte, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path) //#nosec G304 -- path comes from the command line
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", displayName(path), err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%s exceeds max input size of %s", displayName(path), humanize.Bytes(uint64(maxSize)))
	}
	return data, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

// printStats reports sizes for the whole batch and, for the stage timings,
// re-runs each text through CleanWithStats.
func printStats(c *cleantext.Cleaner, texts, cleaned []string, elapsed time.Duration) {
	total := &cleantext.Stats{}
	var warnings int
	for _, text := range texts {
		res := c.CleanWithStats(text)
		total.Add(res.Stats)
		for _, w := range res.Warnings {
			logger.Warn("cleantext warning", "warning", w.String())
			warnings++
		}
	}

	var in, out int
	for i := range texts {
		in += len(texts[i])
		out += len(cleaned[i])
	}

	logInfo("Cleaned %s texts in %s: %s -> %s (%.1f%% reduction)",
		humanize.Comma(int64(len(texts))),
		elapsed.Round(time.Millisecond),
		humanize.Bytes(uint64(in)),
		humanize.Bytes(uint64(out)),
		total.ReductionPercent(),
	)
	if warnings > 0 {
		logInfo("Warnings: %d", warnings)
	}
	logInfo("%s", total.String())
}
