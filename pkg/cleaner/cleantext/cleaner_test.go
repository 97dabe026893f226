package cleantext

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/cleantext/pkg/cleaner"
	"github.com/jmylchreest/cleantext/pkg/cleaner/cleantext/translit"
)

func mustNew(t *testing.T, cfg *Config, opts ...Option) *Cleaner {
	t.Helper()
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func mustClean(t *testing.T, text string, cfg *Config) string {
	t.Helper()
	got, err := Clean(text, cfg)
	if err != nil {
		t.Fatalf("Clean(%q) error = %v", text, err)
	}
	return got
}

// configure returns DefaultConfig modified by fn.
func configure(fn func(*Config)) *Config {
	cfg := DefaultConfig()
	if fn != nil {
		fn(cfg)
	}
	return cfg
}

// Ensure Cleaner implements cleaner.Cleaner
var _ cleaner.Cleaner = (*Cleaner)(nil)

const emojiLine = "🤔 🙈 me, se 😌 ds 💕👭👙 hello 👩🏾‍🎓 emoji hello 👨‍👩‍👦‍👦 how are 😊 you today🙅🏽🙅🏽"

// --- Clean Tests ---

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cfg   *Config
		want  string
	}{
		{
			name:  "no line breaks",
			input: " pet\n\ner",
			cfg:   configure(func(c *Config) { c.NoLineBreaks = true }),
			want:  "pet er",
		},
		{
			name:  "line breaks kept",
			input: " pet\n\ner",
			cfg:   DefaultConfig(),
			want:  "pet\ner",
		},
		{
			name:  "whitespace untouched",
			input: " peter",
			cfg:   configure(func(c *Config) { c.NormalizeWhitespace = false }),
			want:  " peter",
		},
		{
			name:  "whitespace normalized",
			input: " peter",
			cfg:   DefaultConfig(),
			want:  "peter",
		},
		{
			name:  "emoji kept",
			input: emojiLine,
			cfg:   DefaultConfig(),
			want:  emojiLine,
		},
		{
			name:  "emoji removed",
			input: emojiLine,
			cfg:   configure(func(c *Config) { c.NoEmoji = true }),
			want:  "me, se ds hello emoji hello how are you today",
		},
		{
			name:  "emoji removed without ascii",
			input: "😊 you today🙅🏽🙅🏽",
			cfg: configure(func(c *Config) {
				c.ToASCII = false
				c.NoEmoji = true
			}),
			want: "you today",
		},
		{
			name:  "punct replaced with space",
			input: "I can't. No, I won't!",
			cfg: configure(func(c *Config) {
				c.NoPunct = true
				c.ReplaceWithPunct = " "
			}),
			want: "i can t no i won t",
		},
		{
			name:  "punct removed",
			input: "I can't. No, I won't!",
			cfg:   configure(func(c *Config) { c.NoPunct = true }),
			want:  "i cant no i wont",
		},
		{
			name:  "escaped quotes",
			input: `and install a \u2018new\u2019 society in their`,
			cfg:   DefaultConfig(),
			want:  "and install a 'new' society in their",
		},
		{
			name:  "generic transliteration",
			input: "Straße café",
			cfg:   DefaultConfig(),
			want:  "strasse cafe",
		},
		{
			name:  "german profile",
			input: "Grüße, Äpfel»",
			cfg: configure(func(c *Config) {
				c.Lang = "de"
				c.Lower = false
			}),
			want: `Grüße, Äpfel"`,
		},
		{
			name:  "lower without ascii",
			input: "ÄPFEL",
			cfg:   configure(func(c *Config) { c.ToASCII = false }),
			want:  "äpfel",
		},
		{
			name:  "entities",
			input: "Email me at john(at)example.com or call +49 123 1548690",
			cfg: configure(func(c *Config) {
				c.NoEmails = true
				c.NoPhoneNumbers = true
			}),
			want: "email me at <email> or call <phone>",
		},
		{
			name:  "code before urls",
			input: "see `http://x.org` and http://y.org",
			cfg: configure(func(c *Config) {
				c.Lower = false
				c.NoCode = true
				c.NoURLs = true
			}),
			want: "see <CODE> and <URL>",
		},
		{
			name:  "numbers before digits",
			input: "I owe 1,000.99 to 12 people",
			cfg: configure(func(c *Config) {
				c.Lower = false
				c.NoNumbers = true
				c.NoDigits = true
			}),
			want: "I owe <NUMBER> to <NUMBER> people",
		},
		{
			name:  "digits only",
			input: "in the 1970s",
			cfg:   configure(func(c *Config) { c.NoDigits = true }),
			want:  "in the 0000s",
		},
		{
			name:  "currency token",
			input: "this zebra costs $100.",
			cfg: configure(func(c *Config) {
				c.Lower = false
				c.NoCurrencySymbols = true
			}),
			want: "this zebra costs <CUR>100.",
		},
		{
			name:  "currency codes",
			input: "this zebra costs $100.",
			cfg: configure(func(c *Config) {
				c.Lower = false
				c.NoCurrencySymbols = true
				c.CurrencyAsCode = true
			}),
			want: "this zebra costs USD100.",
		},
		{
			name:  "ip and paths",
			input: "host 192.168.0.1 serves /var/www/index.html",
			cfg: configure(func(c *Config) {
				c.Lower = false
				c.NoIPAddresses = true
				c.NoFilePaths = true
			}),
			want: "host <IP> serves <FILE_PATH>",
		},
		{
			name:  "aggressive",
			input: "Visit https://example.com or mail me@x.org, $5!",
			cfg:   PresetAggressive(),
			want:  "visit <url> or mail <email> <cur><number>",
		},
		{
			name:  "minimal keeps case and letters",
			input: "  Crème   Brûlée  ",
			cfg:   PresetMinimal(),
			want:  "Crème Brûlée",
		},
		{
			name:  "empty",
			input: "",
			cfg:   DefaultConfig(),
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustClean(t, tt.input, tt.cfg); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_KeepTwoLineBreaks(t *testing.T) {
	input := `
    Sehr geehrte Damen und Herren,

ich möchte Sie bitten, zu folgendem Fall Stellung zu nehmen. Ich habe einen Fotoautomaten für biometrische Passfotos benutzt, der mein Gesicht nicht erkannt hat. Es besteht die Vermutung, dass dieser Fotoautomat vom BSI zertifiziert ist (Zertifikat BSI-DSZ-CC-0985-2018).

Der Fotoautomat steht in  19061  Berlin.



		Marke: Fotofix





		Ort des Automats: Bezirksamt / Bürgeramt / Bürgerbüro





Mit freundlichen Grüßen,
Johannes dfdfd
    `
	want := `Sehr geehrte Damen und Herren,

ich möchte Sie bitten, zu folgendem Fall Stellung zu nehmen. Ich habe einen Fotoautomaten für biometrische Passfotos benutzt, der mein Gesicht nicht erkannt hat. Es besteht die Vermutung, dass dieser Fotoautomat vom BSI zertifiziert ist (Zertifikat BSI-DSZ-CC-0985-2018).

Der Fotoautomat steht in 19061 Berlin.

Marke: Fotofix

Ort des Automats: Bezirksamt / Bürgeramt / Bürgerbüro

Mit freundlichen Grüßen,
Johannes dfdfd`

	cfg := configure(func(c *Config) {
		c.Lower = false
		c.Lang = "de"
		c.KeepTwoLineBreaks = true
	})
	if got := mustClean(t, input, cfg); got != want {
		t.Errorf("Clean() =\n%s\nwant\n%s", got, want)
	}
}

func TestClean_KeepTwoLineBreaks_CRLF(t *testing.T) {
	input := "Sehr geehrte Damen und Herren,\r\n\r\nDer Fotoautomat steht in  .\r\n\r\n\r\n\t\r\n\t\tOrt des Automats: \r\n\t\r\n\r\n\r\n\r\n \r\n\t\r\n\t\tMarke: \r\n\t\r\n\r\n\r\n\r\n\r\nHier noch Text von Anna Lena.\r\n\r\nMit freundlichen Grüßen"
	want := "Sehr geehrte Damen und Herren,\n\nDer Fotoautomat steht in .\n\nOrt des Automats:\n\nMarke:\n\nHier noch Text von Anna Lena.\n\nMit freundlichen Grüßen"

	cfg := configure(func(c *Config) {
		c.Lower = false
		c.Lang = "de"
		c.KeepTwoLineBreaks = true
	})
	if got := mustClean(t, input, cfg); got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello   World!\n\n\nNew  line",
		"Äpfel» und „Birnen“",
		`and install a ‘new’ society`,
		"vÅ¡etko je OK",
		emojiLine,
		"ﬁne ＦＵＬＬ width",
		"fish &amp;amp; chips",
		"a &amp;lt; b",
		`say \\n now`,
		"",
	}
	c := mustNew(t, nil)
	for _, in := range inputs {
		once, err := c.Clean(in)
		if err != nil {
			t.Fatalf("Clean(%q) error = %v", in, err)
		}
		twice, err := c.Clean(once)
		if err != nil {
			t.Fatalf("Clean(%q) error = %v", once, err)
		}
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// --- Exception Tests ---

func TestClean_Exceptions(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		exceptions []string
		want       string
	}{
		{"hyphen survives punct removal", "drive-thru is great", []string{"drive-thru"}, "drive-thru is great"},
		{"case survives lowering", "Call C++ and drive-thru now!", []string{`C\+\+`, "drive-thru"}, "call C++ and drive-thru now"},
		{"first pattern wins overlap", "New York City!", []string{"New York", "York City"}, "New York city"},
		{"internal whitespace verbatim", "keep  THIS   spacing, ok", []string{`THIS\s+spacing`}, "keep THIS   spacing ok"},
		{"no match", "nothing here.", []string{"absent"}, "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configure(func(c *Config) {
				c.NoPunct = true
				c.Exceptions = tt.exceptions
			})
			if got := mustClean(t, tt.input, cfg); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_InvalidException(t *testing.T) {
	cfg := configure(func(c *Config) { c.Exceptions = []string{"ok", "(unclosed"} })
	_, err := New(cfg)
	if !errors.Is(err, ErrInvalidException) {
		t.Fatalf("New() error = %v, want ErrInvalidException", err)
	}
	if !strings.Contains(err.Error(), "(unclosed") {
		t.Errorf("error %q should name the pattern", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := configure(func(c *Config) { c.Lang = "not a tag!" })
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}

// --- Cleaner Tests ---

func TestCleaner_Stages(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want []string
	}{
		{
			name: "default",
			cfg:  DefaultConfig(),
			want: []string{StageFixUnicode, StageToASCII, StageLower, StageWhitespace},
		},
		{
			name: "minimal",
			cfg:  PresetMinimal(),
			want: []string{StageFixUnicode, StageWhitespace},
		},
		{
			name: "aggressive",
			cfg:  PresetAggressive(),
			want: []string{
				StageFixUnicode, StageCurrency, StageCode, StageToASCII, StageURLs, StageEmails,
				StagePhone, StageIP, StageFilePaths, StageNumbers, StageDigits, StagePunct,
				StageLower, StageWhitespace,
			},
		},
		{
			name: "emoji removal without ascii",
			cfg: configure(func(c *Config) {
				c.ToASCII = false
				c.NoEmoji = true
				c.NoPunct = true
			}),
			want: []string{StageFixUnicode, StagePunct, StageEmoji, StageLower, StageWhitespace},
		},
		{
			name: "nothing",
			cfg:  &Config{},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustNew(t, tt.cfg).Stages()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Stages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleaner_ZeroConfigIsIdentity(t *testing.T) {
	c := mustNew(t, &Config{})
	in := "  Mixed CASE, punct! and ünïcode  "
	got, err := c.Clean(in)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != in {
		t.Errorf("Clean() = %q, want input unchanged", got)
	}
}

func TestCleaner_WithTransliterator(t *testing.T) {
	c := mustNew(t, nil, WithTransliterator(translit.Fallback{}))
	got, err := c.Clean("Crème Brûlée")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "creme brulee" {
		t.Errorf("Clean() = %q, want %q", got, "creme brulee")
	}
}

func TestCleaner_ConfigIsCopied(t *testing.T) {
	cfg := configure(func(c *Config) { c.Exceptions = []string{"keep"} })
	c := mustNew(t, cfg)

	cfg.Lower = false
	cfg.Exceptions[0] = "changed"

	got := c.Config()
	if !got.Lower || got.Exceptions[0] != "keep" {
		t.Errorf("Config() = %+v, want the values New saw", got)
	}
	if out, _ := c.Clean("KEEP keep"); out != "keep keep" {
		t.Errorf("Clean() = %q", out)
	}
}

func TestCleaner_Name(t *testing.T) {
	if got := mustNew(t, nil).Name(); got != "cleantext" {
		t.Errorf("Name() = %q, want %q", got, "cleantext")
	}
}

// --- CleanValue Tests ---

func TestCleanValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string", " Hello ", "hello"},
		{"bytes", []byte("Straße"), "strasse"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"error value", errors.New("Boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanValue(tt.input, nil)
			if err != nil {
				t.Fatalf("CleanValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CleanValue(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
