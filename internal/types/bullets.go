package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Bullets is a list of bullet lines. It decodes from either a JSON array of
// strings or a single newline-separated string and always encodes as an array.
type Bullets []string

// ParseBullets splits newline-separated text into bullets, dropping blank lines.
func ParseBullets(text string) Bullets {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make(Bullets, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// UnmarshalJSON accepts an array of strings, a newline-separated string, or null.
func (b *Bullets) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*b = Bullets{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*b = ParseBullets(text)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("bullets must be a string or an array of strings: %w", err)
	}
	out := make(Bullets, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	*b = out
	return nil
}

// MarshalJSON always writes an array, never null.
func (b Bullets) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(b))
}

// Clone returns a copy that does not share backing storage.
func (b Bullets) Clone() Bullets {
	if b == nil {
		return nil
	}
	return append(Bullets{}, b...)
}
