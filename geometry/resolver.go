// Package geometry places board pins on a logical canvas and translates between
// board positions and the actual pin identifiers downstream tools address.
package geometry

import (
	"math"

	"hardware-mapper/models"
)

const (
	// DefaultWidth is the logical canvas width presentation layers draw on
	DefaultWidth = 1000.0
	// DefaultRatio (height/width) is used until a board photo's real aspect is known
	DefaultRatio = 768.0 / 1177.0

	// MaxWidth and MaxRatio bound caller-supplied canvases
	MaxWidth = 100000.0
	MaxRatio = 100.0
)

// headerLines places the two pin lines as fractions of the header rectangle:
// odd and even across it, inset and span along it
type headerLines struct {
	odd, even   float64
	inset, span float64
}

var (
	rowLines    = headerLines{odd: 0.35, even: 0.72, inset: 0.02, span: 0.96}
	columnLines = headerLines{odd: 0.28, even: 0.72, inset: 0.03, span: 0.94}
)

// Canvas is the logical drawing area. Height follows from Width and the photo's aspect ratio.
type Canvas struct {
	Width float64 `json:"width"`
	Ratio float64 `json:"ratio"`
}

// DefaultCanvas returns the canvas used before a board photo has been measured
func DefaultCanvas() Canvas {
	return Canvas{Width: DefaultWidth, Ratio: DefaultRatio}
}

func (c Canvas) normalized() Canvas {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Ratio <= 0 {
		c.Ratio = DefaultRatio
	}
	return c
}

// Height returns the canvas height rounded to whole units
func (c Canvas) Height() float64 {
	c = c.normalized()
	return math.Round(c.Width * c.Ratio)
}

// Rect is an axis-aligned rectangle in canvas units
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Layout is the resolved geometry of one board on one canvas
type Layout struct {
	BoardID    string               `json:"boardId"`
	Width      float64              `json:"width"`
	Height     float64              `json:"height"`
	Header     Rect                 `json:"header"`
	Horizontal bool                 `json:"horizontal"`
	Custom     bool                 `json:"custom"`
	Pins       []models.PinPosition `json:"pins"`
}

// Pin returns the resolved position of a board position
func (l Layout) Pin(n int) (models.PinPosition, bool) {
	for _, p := range l.Pins {
		if p.Number == n {
			return p, true
		}
	}
	return models.PinPosition{}, false
}

// PinRadius is the drawing radius for pin markers, scaled to the header's short side
func (l Layout) PinRadius() float64 {
	side := l.Header.W
	if l.Horizontal {
		side = l.Header.H
	}
	return math.Max(9, math.Min(16, side*0.065))
}

// Resolve computes the canvas position of every pin on the board.
// Custom layouts spread each pin group along its own line; other boards are a dual-row
// header whose orientation follows the header rectangle's shape on the canvas.
func Resolve(board models.BoardDefinition, canvas Canvas) Layout {
	canvas = canvas.normalized()
	w := canvas.Width
	h := canvas.Height()

	layout := Layout{
		BoardID: board.ID,
		Width:   w,
		Height:  h,
		Header: Rect{
			X: board.Header.X * w,
			Y: board.Header.Y * h,
			W: board.Header.W * w,
			H: board.Header.H * h,
		},
	}
	layout.Horizontal = layout.Header.W >= layout.Header.H

	if board.HasCustomLayout() {
		layout.Custom = true
		for _, g := range board.CustomLayout.PinGroups {
			layout.Pins = append(layout.Pins, groupPins(board, g, w, h)...)
		}
		return layout
	}

	layout.Pins = headerPins(board, layout.Header, layout.Horizontal)
	return layout
}

// groupPins spreads a pin group evenly from (x, y) to (x+width, y). A single pin sits at the start.
func groupPins(board models.BoardDefinition, g models.PinGroup, w, h float64) []models.PinPosition {
	n := g.Count()
	startX := g.X * w
	width := g.Width * w
	y := g.Y * h

	out := make([]models.PinPosition, 0, n)
	for i := 0; i < n; i++ {
		x := startX
		if n > 1 {
			x += float64(i) / float64(n-1) * width
		}
		out = append(out, pinAt(board, g.StartPin+i, x, y))
	}
	return out
}

// headerPins places row i's pins 1+2i and 2+2i on two parallel lines across the header
func headerPins(board models.BoardDefinition, header Rect, horizontal bool) []models.PinPosition {
	rows := board.Rows
	along, across := header.W, header.H
	alongStart, acrossStart := header.X, header.Y
	lines := rowLines
	if !horizontal {
		along, across = header.H, header.W
		alongStart, acrossStart = header.Y, header.X
		lines = columnLines
	}

	oddAt := acrossStart + across*lines.odd
	evenAt := acrossStart + across*lines.even
	start := alongStart + along*lines.inset
	gap := 0.0
	if rows > 1 {
		gap = along * (lines.span / float64(rows-1))
	}

	out := make([]models.PinPosition, 0, rows*2)
	for i := 0; i < rows; i++ {
		pos := start + float64(i)*gap
		if horizontal {
			out = append(out, pinAt(board, 1+2*i, pos, oddAt), pinAt(board, 2+2*i, pos, evenAt))
		} else {
			out = append(out, pinAt(board, 1+2*i, oddAt, pos), pinAt(board, 2+2*i, evenAt, pos))
		}
	}
	return out
}

func pinAt(board models.BoardDefinition, n int, x, y float64) models.PinPosition {
	return models.PinPosition{
		Number: n,
		X:      x,
		Y:      y,
		Label:  board.Label(n),
		Kind:   board.Kind(n),
		Actual: ActualPin(board, n),
	}
}
