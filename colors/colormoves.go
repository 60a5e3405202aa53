package colors

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

var (
	// ErrInvalidColormap is returned when the input is not a colormap XML file.
	ErrInvalidColormap = errors.New("colors: invalid input file, it must be a colormap xml file " +
		"(see https://sciviscolor.org/colormaps/ for options)")

	// ErrPositionCount is returned when positions and colours differ in length.
	ErrPositionCount = errors.New("colors: position length must be the same as colors")

	// ErrPositionRange is returned when positions do not span [0, 1].
	ErrPositionRange = errors.New("colors: position must start with 0 and end with 1")
)

// DefaultTableSize is the number of entries of a sampled colormap table.
const DefaultTableSize = 256

// Colormap is a piecewise linear colour gradient over [0, 1].
type Colormap struct {
	Name      string
	Positions []float64
	Colors    []Decimal
}

// NewColormap validates positions and colours.
func NewColormap(name string, positions []float64, colors []Decimal) (*Colormap, error) {
	if len(positions) != len(colors) {
		return nil, ErrPositionCount
	}
	if len(positions) == 0 || positions[0] != 0 || positions[len(positions)-1] != 1 {
		return nil, ErrPositionRange
	}
	if !sort.Float64sAreSorted(positions) {
		return nil, fmt.Errorf("%w: positions must be ascending", ErrPositionRange)
	}
	return &Colormap{Name: name, Positions: positions, Colors: colors}, nil
}

// At interpolates the colour at x. Values outside [0, 1] are clamped.
func (c *Colormap) At(x float64) Decimal {
	if x <= c.Positions[0] {
		return c.Colors[0]
	}
	last := len(c.Positions) - 1
	if x >= c.Positions[last] {
		return c.Colors[last]
	}

	i := sort.SearchFloat64s(c.Positions, x)
	if c.Positions[i] == x {
		return c.Colors[i]
	}
	x0, x1 := c.Positions[i-1], c.Positions[i]
	f := (x - x0) / (x1 - x0)
	a, b := c.Colors[i-1], c.Colors[i]
	return Decimal{
		R: a.R + f*(b.R-a.R),
		G: a.G + f*(b.G-a.G),
		B: a.B + f*(b.B-a.B),
	}
}

// Table samples n evenly spaced colours from 0 to 1.
func (c *Colormap) Table(n int) []Decimal {
	if n <= 0 {
		n = DefaultTableSize
	}
	if n == 1 {
		return []Decimal{c.At(0)}
	}
	out := make([]Decimal, n)
	for i := range out {
		out[i] = c.At(float64(i) / float64(n-1))
	}
	return out
}

type colorMapsXML struct {
	XMLName xml.Name
	Name    string        `xml:"name,attr"`
	Maps    []colorMapXML `xml:"ColorMap"`
	Points  []pointXML    `xml:"Point"`
}

type colorMapXML struct {
	Name   string     `xml:"name,attr"`
	Points []pointXML `xml:"Point"`
}

type pointXML struct {
	X float64 `xml:"x,attr"`
	R float64 `xml:"r,attr"`
	G float64 `xml:"g,attr"`
	B float64 `xml:"b,attr"`
}

// ParseColorMoves reads a ColorMoves/ParaView colormap XML document. Both a
// <ColorMaps><ColorMap> wrapper and a bare <ColorMap> root are accepted; the
// first map found is used.
func ParseColorMoves(r io.Reader) (*Colormap, error) {
	var doc colorMapsXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColormap, err)
	}

	name, points := "my_colormap", doc.Points
	if doc.Name != "" {
		name = doc.Name
	}
	if len(doc.Maps) > 0 {
		points = doc.Maps[0].Points
		if doc.Maps[0].Name != "" {
			name = doc.Maps[0].Name
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no <Point> elements", ErrInvalidColormap)
	}

	positions := make([]float64, len(points))
	colors := make([]Decimal, len(points))
	for i, p := range points {
		positions[i] = p.X
		colors[i] = Decimal{R: p.R, G: p.G, B: p.B}
	}
	return NewColormap(name, positions, colors)
}

// LoadColorMoves opens path and parses it with ParseColorMoves.
func LoadColorMoves(path string) (*Colormap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColormap, err)
	}
	defer f.Close()
	return ParseColorMoves(f)
}
