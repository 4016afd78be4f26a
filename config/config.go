// Package config holds the construction-time chart options and their YAML
// form.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/suitlines/plot"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned by Set for an option name that does not exist.
var ErrUnknownKey = errors.New("unknown option")

// Options is the declarative chart configuration. Colors are written as
// "#rrggbb", "#aarrggbb" or one of the names red, yellow, white, gray.
type Options struct {
	TextSize  float32 `yaml:"text_size"`
	TextColor string  `yaml:"text_color"`

	LineShape string   `yaml:"line_shape"`
	LineStyle string   `yaml:"line_style"`
	LineDash  string   `yaml:"line_dash"`
	LineWidth float32  `yaml:"line_width"`
	Colors    []string `yaml:"colors,omitempty"`

	CoverLine      bool    `yaml:"cover_line"`
	CoverLineWidth float32 `yaml:"cover_line_width"`

	EdgeFeedback bool   `yaml:"edge_feedback"`
	EdgeColor    string `yaml:"edge_color"`

	Hint      bool    `yaml:"hint"`
	HintColor string  `yaml:"hint_color"`
	HintSlop  float32 `yaml:"hint_slop"`

	Grid bool `yaml:"grid"`

	MaxVisible int     `yaml:"max_visible"`
	YTicks     int     `yaml:"y_ticks"`
	Padding    float32 `yaml:"padding"`

	PointInterval time.Duration `yaml:"point_interval"`
	MaxTraversal  time.Duration `yaml:"max_traversal"`
	Overshoot     bool          `yaml:"overshoot"`
}

// Default returns the stock options.
func Default() Options {
	return Options{
		TextSize:       8,
		TextColor:      "gray",
		LineShape:      plot.Curve.String(),
		LineStyle:      "stroke",
		LineDash:       plot.Solid.String(),
		LineWidth:      4,
		CoverLineWidth: 5,
		EdgeFeedback:   true,
		EdgeColor:      "gray",
		Hint:           true,
		HintColor:      "red",
		HintSlop:       12,
		MaxVisible:     7,
		YTicks:         5,
		Padding:        4,
		PointInterval:  100 * time.Millisecond,
		MaxTraversal:   time.Second,
	}
}

// Load decodes the YAML file at path over the defaults.
func Load(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed opening options: %w", err)
	}
	defer f.Close()
	o, err := Decode(f)
	if err != nil {
		return Options{}, fmt.Errorf("failed loading %q: %w", path, err)
	}
	return o, nil
}

// Decode reads YAML options from r over the defaults. Fields absent from the
// document keep their default values.
func Decode(r io.Reader) (Options, error) {
	o := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("failed decoding options: %w", err)
	}
	return o.Validate(), nil
}

// Encode writes o as YAML.
func (o Options) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("failed encoding options: %w", err)
	}
	return enc.Close()
}

// Validate clamps out-of-range values to their minimums.
func (o Options) Validate() Options {
	if o.MaxVisible < 2 {
		o.MaxVisible = 2
	}
	if o.YTicks < 1 {
		o.YTicks = 1
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.MaxTraversal < 0 {
		o.MaxTraversal = 0
	}
	return o
}

// Set applies a single "key=value" style override, as given on a command
// line. Keys are the YAML field names.
func (o *Options) Set(key, value string) error {
	var err error
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "text_size":
		o.TextSize, err = cast.ToFloat32E(value)
	case "text_color":
		_, err = ParseColor(value)
		o.TextColor = value
	case "line_shape":
		_, err = parseShape(value)
		o.LineShape = value
	case "line_style":
		_, err = parseFill(value)
		o.LineStyle = value
	case "line_dash":
		_, err = parseDash(value)
		o.LineDash = value
	case "line_width":
		o.LineWidth, err = cast.ToFloat32E(value)
	case "colors":
		o.Colors = strings.Split(value, ",")
		_, err = parseColors(o.Colors)
	case "cover_line":
		o.CoverLine, err = cast.ToBoolE(value)
	case "cover_line_width":
		o.CoverLineWidth, err = cast.ToFloat32E(value)
	case "edge_feedback":
		o.EdgeFeedback, err = cast.ToBoolE(value)
	case "edge_color":
		_, err = ParseColor(value)
		o.EdgeColor = value
	case "hint":
		o.Hint, err = cast.ToBoolE(value)
	case "hint_color":
		_, err = ParseColor(value)
		o.HintColor = value
	case "hint_slop":
		o.HintSlop, err = cast.ToFloat32E(value)
	case "grid":
		o.Grid, err = cast.ToBoolE(value)
	case "max_visible":
		o.MaxVisible, err = cast.ToIntE(value)
	case "y_ticks":
		o.YTicks, err = cast.ToIntE(value)
	case "padding":
		o.Padding, err = cast.ToFloat32E(value)
	case "point_interval":
		o.PointInterval, err = cast.ToDurationE(value)
	case "max_traversal":
		o.MaxTraversal, err = cast.ToDurationE(value)
	case "overshoot":
		o.Overshoot, err = cast.ToBoolE(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return nil
}

// SetAll applies a list of "key=value" overrides in order.
func (o *Options) SetAll(pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("override %q is not key=value", pair)
		}
		if err := o.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Plot converts o into engine options.
func (o Options) Plot() (plot.Options, error) {
	o = o.Validate()
	p := plot.DefaultOptions()
	var err error
	if p.TextColor, err = ParseColor(o.TextColor); err != nil {
		return p, fmt.Errorf("text_color: %w", err)
	}
	if p.EdgeColor, err = ParseColor(o.EdgeColor); err != nil {
		return p, fmt.Errorf("edge_color: %w", err)
	}
	if p.HintColor, err = ParseColor(o.HintColor); err != nil {
		return p, fmt.Errorf("hint_color: %w", err)
	}
	if p.Shape, err = parseShape(o.LineShape); err != nil {
		return p, err
	}
	if p.Fill, err = parseFill(o.LineStyle); err != nil {
		return p, err
	}
	if p.Dash, err = parseDash(o.LineDash); err != nil {
		return p, err
	}
	if len(o.Colors) > 0 {
		if p.DefaultColors, err = parseColors(o.Colors); err != nil {
			return p, err
		}
	}
	p.TextSize = o.TextSize
	p.LineWidth = o.LineWidth
	p.CoverLine = o.CoverLine
	p.CoverLineWidth = o.CoverLineWidth
	p.EdgeFeedback = o.EdgeFeedback
	p.Hint = o.Hint
	p.HintSlop = o.HintSlop
	p.Grid = o.Grid
	p.MaxVisible = o.MaxVisible
	p.YTicks = o.YTicks
	p.Padding = o.Padding
	p.PointInterval = o.PointInterval
	p.MaxTraversal = o.MaxTraversal
	p.Overshoot = o.Overshoot
	return p, nil
}

func parseShape(s string) (plot.LineShape, error) {
	switch strings.ToLower(s) {
	case "", plot.Curve.String():
		return plot.Curve, nil
	case plot.Segment.String():
		return plot.Segment, nil
	}
	return 0, fmt.Errorf("unknown line shape %q", s)
}

func parseFill(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "stroke":
		return false, nil
	case "fill":
		return true, nil
	}
	return false, fmt.Errorf("unknown line style %q", s)
}

func parseDash(s string) (plot.LineDash, error) {
	switch strings.ToLower(s) {
	case "", plot.Solid.String():
		return plot.Solid, nil
	case plot.Dashed.String():
		return plot.Dashed, nil
	}
	return 0, fmt.Errorf("unknown line dash %q", s)
}

func parseColors(names []string) ([]plot.Color, error) {
	out := make([]plot.Color, 0, len(names))
	for _, n := range names {
		c, err := ParseColor(n)
		if err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

var named = map[string]plot.Color{
	"red":    plot.Red,
	"yellow": plot.Yellow,
	"white":  plot.White,
	"gray":   plot.Gray,
	"grey":   plot.Gray,
}

// ParseColor reads a named color or a hex "#rrggbb" / "#aarrggbb" value.
func ParseColor(s string) (plot.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return plot.Color{}, fmt.Errorf("malformed color %q", s)
	}
	v, err := cast.ToUint32E("0x" + hex)
	if err != nil {
		return plot.Color{}, fmt.Errorf("malformed color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xff000000
	}
	return plot.Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
