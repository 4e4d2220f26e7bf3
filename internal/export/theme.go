package export

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme controls the colors, font and column widths of an exported sheet.
// Colors are RRGGBB hex strings with or without a leading '#'.
type Theme struct {
	Font struct {
		Family    string  `yaml:"family"`
		Size      float64 `yaml:"size"`
		TitleSize float64 `yaml:"title_size"`
	} `yaml:"font"`
	Colors struct {
		Title      string `yaml:"title"`
		HeaderFill string `yaml:"header_fill"`
		HeaderText string `yaml:"header_text"`
		Completed  string `yaml:"completed"`
		Current    string `yaml:"current"`
		Future     string `yaml:"future"`
		Weekend    string `yaml:"weekend"`
		AltRow     string `yaml:"alt_row"`
		Today      string `yaml:"today"`
		Grid       string `yaml:"grid"`
		Muted      string `yaml:"muted"`
	} `yaml:"colors"`
	Widths struct {
		ID       float64 `yaml:"id"`
		Name     float64 `yaml:"name"`
		Date     float64 `yaml:"date"`
		Duration float64 `yaml:"duration"`
		Day      float64 `yaml:"day"`
	} `yaml:"widths"`
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	var t Theme
	t.Font.Family = "Calibri"
	t.Font.Size = 11
	t.Font.TitleSize = 16

	t.Colors.Title = "1F3864"
	t.Colors.HeaderFill = "1F3864"
	t.Colors.HeaderText = "FFFFFF"
	t.Colors.Completed = "6AA84F"
	t.Colors.Current = "4285F4"
	t.Colors.Future = "B4C7E7"
	t.Colors.Weekend = "EDEDED"
	t.Colors.AltRow = "F7F9FC"
	t.Colors.Today = "E06666"
	t.Colors.Grid = "D9D9D9"
	t.Colors.Muted = "7F7F7F"

	t.Widths.ID = 15
	t.Widths.Name = 30
	t.Widths.Date = 15
	t.Widths.Duration = 15
	t.Widths.Day = 6
	return t
}

// LoadTheme reads a YAML theme. Keys left out keep their default values.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file: %w", err)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return Theme{}, err
	}
	theme.normalize()
	return theme, nil
}

// Validate checks every color is a six digit hex value and widths are positive.
func (t Theme) Validate() error {
	colors := map[string]string{
		"title":       t.Colors.Title,
		"header_fill": t.Colors.HeaderFill,
		"header_text": t.Colors.HeaderText,
		"completed":   t.Colors.Completed,
		"current":     t.Colors.Current,
		"future":      t.Colors.Future,
		"weekend":     t.Colors.Weekend,
		"alt_row":     t.Colors.AltRow,
		"today":       t.Colors.Today,
		"grid":        t.Colors.Grid,
		"muted":       t.Colors.Muted,
	}
	for name, c := range colors {
		if _, ok := parseHex(c); !ok {
			return fmt.Errorf("theme color %s: %q is not RRGGBB hex", name, c)
		}
	}
	for name, w := range map[string]float64{
		"id": t.Widths.ID, "name": t.Widths.Name, "date": t.Widths.Date,
		"duration": t.Widths.Duration, "day": t.Widths.Day,
	} {
		if w <= 0 {
			return fmt.Errorf("theme width %s must be positive", name)
		}
	}
	return nil
}

func (t *Theme) normalize() {
	for _, c := range []*string{
		&t.Colors.Title, &t.Colors.HeaderFill, &t.Colors.HeaderText,
		&t.Colors.Completed, &t.Colors.Current, &t.Colors.Future,
		&t.Colors.Weekend, &t.Colors.AltRow, &t.Colors.Today,
		&t.Colors.Grid, &t.Colors.Muted,
	} {
		*c = normalizeHex(*c)
	}
}

// parseHex reads RRGGBB (optionally '#'-prefixed) into its components.
func parseHex(s string) ([3]uint8, bool) {
	var out [3]uint8
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return out, false
	}
	for i := 0; i < 3; i++ {
		var v uint8
		for _, ch := range s[i*2 : i*2+2] {
			v <<= 4
			switch {
			case ch >= '0' && ch <= '9':
				v |= uint8(ch - '0')
			case ch >= 'a' && ch <= 'f':
				v |= uint8(ch-'a') + 10
			case ch >= 'A' && ch <= 'F':
				v |= uint8(ch-'A') + 10
			default:
				return out, false
			}
		}
		out[i] = v
	}
	return out, true
}

// normalizeHex upper-cases a color and strips any '#'.
func normalizeHex(s string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
