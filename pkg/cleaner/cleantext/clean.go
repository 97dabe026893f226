package cleantext

import "fmt"

// Clean cleans one text with cfg, or DefaultConfig when cfg is nil.
// Callers cleaning many texts should build a Cleaner once with New.
func Clean(text string, cfg *Config) (string, error) {
	c, err := New(cfg)
	if err != nil {
		return "", err
	}
	return c.Clean(text)
}

// CleanValue cleans the textual form of v. A nil v gives "" and is not
// an error; []byte is read as UTF-8 text and everything else goes through
// fmt.Sprint.
func CleanValue(v any, cfg *Config) (string, error) {
	c, err := New(cfg)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return c.Clean(toText(v))
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(v)
	}
}
