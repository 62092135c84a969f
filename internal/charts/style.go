// internal/charts/style.go
package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mwiater/salarydash/internal/salary"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultStyle is the preset used when no style is configured.
const DefaultStyle = "classic"

// fallbackColor is used for experience levels missing from a palette.
const fallbackColor = "#9e9e9e"

// ErrUnknownStyle is returned for preset names that do not exist.
var ErrUnknownStyle = errors.New("unknown style")

// Size is a figure size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Style parameterizes the cosmetics shared by both dashboard figures.
type Style struct {
	Name                string            `json:"name"`
	LineWidth           float64           `json:"lineWidth"`
	FacetSpacing        float64           `json:"facetSpacing"`
	Palette             map[string]string `json:"palette"`
	CountryMargin       Margin            `json:"countryMargin"`
	ComparisonMargin    Margin            `json:"comparisonMargin"`
	CountrySize         Size              `json:"countrySize"`
	ComparisonSize      Size              `json:"comparisonSize"`
	TickBreak           string            `json:"tickBreak"`
	HighlightCountry    string            `json:"highlightCountry"`
	ComparisonTickAngle int               `json:"comparisonTickAngle"`
}

func classic() Style {
	return Style{
		Name:         "classic",
		LineWidth:    3.5,
		FacetSpacing: 0.138,
		Palette: map[string]string{
			"No Experience":          "#fdd0a2",
			"10 years of Experience": "#fd8d3c",
			"15 years of Experience": "#d94801",
			"Maximum Experience":     "#7f2704",
		},
		CountryMargin:       Margin{Top: 100, Bottom: 150},
		ComparisonMargin:    Margin{Top: 35, Bottom: 150, Left: 90, Right: 80},
		CountrySize:         Size{Width: 2000, Height: 400},
		ComparisonSize:      Size{Width: 2000, Height: 600},
		TickBreak:           "<br>",
		HighlightCountry:    "Israel",
		ComparisonTickAngle: -45,
	}
}

var presets = map[string]func() Style{
	"classic": classic,
	"compact": func() Style {
		s := classic()
		s.Name = "compact"
		s.LineWidth = 2
		s.FacetSpacing = 0.08
		s.CountryMargin = Margin{Top: 60, Bottom: 90}
		s.ComparisonMargin = Margin{Top: 30, Bottom: 110, Left: 60, Right: 40}
		s.CountrySize = Size{Width: 1200, Height: 320}
		s.ComparisonSize = Size{Width: 1200, Height: 480}
		s.ComparisonTickAngle = -60
		return s
	},
	"mono": func() Style {
		s := classic()
		s.Name = "mono"
		s.LineWidth = 3
		s.Palette = map[string]string{
			"No Experience":          "#d9d9d9",
			"10 years of Experience": "#969696",
			"15 years of Experience": "#525252",
			"Maximum Experience":     "#000000",
		}
		return s
	},
}

// PresetNames lists the built-in style presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a built-in style by name. An empty name selects DefaultStyle.
func Preset(name string) (Style, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultStyle
	}
	build, ok := presets[name]
	if !ok {
		return Style{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownStyle, name, strings.Join(PresetNames(), ", "))
	}
	return build(), nil
}

var marginSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"top":    map[string]any{"type": "integer", "minimum": 0},
		"bottom": map[string]any{"type": "integer", "minimum": 0},
		"left":   map[string]any{"type": "integer", "minimum": 0},
		"right":  map[string]any{"type": "integer", "minimum": 0},
	},
	"additionalProperties": false,
}

var sizeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"width":  map[string]any{"type": "integer", "minimum": 1},
		"height": map[string]any{"type": "integer", "minimum": 1},
	},
	"additionalProperties": false,
}

var styleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":         map[string]any{"type": "string"},
		"lineWidth":    map[string]any{"type": "number", "minimum": 0},
		"facetSpacing": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"palette": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":    "string",
				"pattern": "^#[0-9a-fA-F]{6}$",
			},
		},
		"countryMargin":       marginSchema,
		"comparisonMargin":    marginSchema,
		"countrySize":         sizeSchema,
		"comparisonSize":      sizeSchema,
		"tickBreak":           map[string]any{"type": "string"},
		"highlightCountry":    map[string]any{"type": "string"},
		"comparisonTickAngle": map[string]any{"type": "integer", "minimum": -90, "maximum": 90},
	},
	"additionalProperties": false,
}

// LoadStyle reads a JSON style file, validates it and fills every unset field
// from the classic preset.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style file %q: %w", path, err)
	}
	return ParseStyle(data)
}

// ParseStyle validates and decodes a JSON style document.
func ParseStyle(data []byte) (Style, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(styleSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Style{}, fmt.Errorf("style schema validation error: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return Style{}, fmt.Errorf("style failed validation: %s", strings.Join(details, "; "))
	}

	var custom Style
	if err := json.Unmarshal(data, &custom); err != nil {
		return Style{}, fmt.Errorf("decode style: %w", err)
	}
	for level := range custom.Palette {
		if _, err := salary.ExperienceRank(level); err != nil {
			return Style{}, fmt.Errorf("style palette: %w", err)
		}
	}
	return mergeStyle(classic(), custom), nil
}

func mergeStyle(base, custom Style) Style {
	out := base
	if custom.Name != "" {
		out.Name = custom.Name
	} else {
		out.Name = "custom"
	}
	if custom.LineWidth > 0 {
		out.LineWidth = custom.LineWidth
	}
	if custom.FacetSpacing > 0 {
		out.FacetSpacing = custom.FacetSpacing
	}
	if len(custom.Palette) > 0 {
		out.Palette = make(map[string]string, len(custom.Palette))
		for k, v := range custom.Palette {
			out.Palette[k] = v
		}
	}
	if custom.CountryMargin != (Margin{}) {
		out.CountryMargin = custom.CountryMargin
	}
	if custom.ComparisonMargin != (Margin{}) {
		out.ComparisonMargin = custom.ComparisonMargin
	}
	if custom.CountrySize != (Size{}) {
		out.CountrySize = custom.CountrySize
	}
	if custom.ComparisonSize != (Size{}) {
		out.ComparisonSize = custom.ComparisonSize
	}
	if custom.TickBreak != "" {
		out.TickBreak = custom.TickBreak
	}
	if custom.HighlightCountry != "" {
		out.HighlightCountry = custom.HighlightCountry
	}
	if custom.ComparisonTickAngle != 0 {
		out.ComparisonTickAngle = custom.ComparisonTickAngle
	}
	return out
}

// Color returns the palette color of an experience level.
func (s Style) Color(experience string) string {
	if c, ok := s.Palette[experience]; ok {
		return c
	}
	return fallbackColor
}

// EducationTick formats an education level as an x tick label: "general" is
// dropped and a line break is inserted before "education".
func (s Style) EducationTick(level string) string {
	label := strings.ReplaceAll(level, "general", "")
	label = strings.Join(strings.Fields(label), " ")
	return strings.ReplaceAll(label, "education", s.TickBreak+"education")
}

// highlight marks the configured country in bold.
func (s Style) highlight(country string) string {
	if s.HighlightCountry != "" && country == s.HighlightCountry {
		return "<b>" + country + "</b>"
	}
	return country
}
