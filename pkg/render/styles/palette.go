package styles

import (
	"bytes"
	"encoding/xml"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/overlay"
)

// Palette assigns colors to series and markers.
type Palette struct {
	Name       string
	Series     map[string]string        // series class -> color
	SeriesDash map[string]string        // series class -> SVG dash array
	Markers    map[overlay.Class]string // marker class -> color
	MarkerDash string
	Axis       string
	Text       string
	Background string
	Fallback   string // color of unknown series
}

var (
	Classic = Palette{
		Name:       "classic",
		Series:     map[string]string{"edits": "maroon", "testEdits": "orange", "launches": "steelblue"},
		SeriesDash: map[string]string{"edits": "2,2"},
		Markers: map[overlay.Class]string{
			overlay.ClassMilestone: "black",
			overlay.ClassEarly:     "black",
			overlay.ClassDue:       "black",
		},
		MarkerDash: "10,10",
		Axis:       "black",
		Text:       "black",
		Background: "white",
		Fallback:   "gray",
	}

	Deadline = Palette{
		Name:   "deadline",
		Series: map[string]string{"edits": "steelblue", "testEdits": "orange", "launches": "maroon"},
		Markers: map[overlay.Class]string{
			overlay.ClassMilestone: "green",
			overlay.ClassEarly:     "orange",
			overlay.ClassDue:       "red",
		},
		Axis:       "black",
		Text:       "black",
		Background: "white",
		Fallback:   "gray",
	}
)

var palettes = map[string]Palette{Classic.Name: Classic, Deadline.Name: Deadline}

// LookupPalette returns the palette with the given name.
func LookupPalette(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidInput, "unknown palette %q (valid: classic, deadline)", name)
	}
	return p, nil
}

// SeriesColor returns the fill color of a series class.
func (p Palette) SeriesColor(class string) string {
	if c, ok := p.Series[class]; ok {
		return c
	}
	return p.Fallback
}

// MarkerColor returns the stroke color of a marker class.
func (p Palette) MarkerColor(class overlay.Class) string {
	if c, ok := p.Markers[class]; ok {
		return c
	}
	return p.Text
}

var namedColors = map[string]color.RGBA{
	"black":     {0, 0, 0, 255},
	"white":     {255, 255, 255, 255},
	"gray":      {128, 128, 128, 255},
	"maroon":    {128, 0, 0, 255},
	"orange":    {255, 165, 0, 255},
	"steelblue": {70, 130, 180, 255},
	"green":     {0, 128, 0, 255},
	"red":       {255, 0, 0, 255},
}

// ParseColor resolves a color name or #rrggbb value.
func ParseColor(s string) (color.RGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidInput, "unknown color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unknown color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
