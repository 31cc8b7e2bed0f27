// Package model holds the pure value types that flow through the packing
// engine: rectangles, demands, expanded pieces, placements, sheets, and the
// final solution. Nothing here mutates; every operation returns a new value.
package model

import "github.com/google/uuid"

// Rect is an axis-aligned rectangle in millimetres. X and Y are the
// top-left corner; W and H are width and height. Used for the free
// rectangles tracked inside a bin.
type Rect struct {
	X, Y, W, H int
}

// Area returns W*H as an int64 to keep panel-scale sums away from int
// overflow on 32-bit platforms.
func (r Rect) Area() int64 {
	return int64(r.W) * int64(r.H)
}

// Fits reports whether a w x h rectangle fits within r without rotation.
func (r Rect) Fits(w, h int) bool {
	return w <= r.W && h <= r.H
}

// Grain locks a piece to its given orientation: a demand with GrainAlong
// or GrainAcross is never rotated during placement, regardless of the
// caller's allow_rotation flag. The zero value, GrainNone, imposes no
// constraint and is what every demand gets unless a caller sets it
// explicitly.
type Grain int

const (
	GrainNone Grain = iota
	GrainAlong
	GrainAcross
)

func (g Grain) String() string {
	switch g {
	case GrainAlong:
		return "Along"
	case GrainAcross:
		return "Across"
	default:
		return "None"
	}
}

// Demand is one line item: a rectangle size and how many are wanted.
type Demand struct {
	W, H  int
	Qty   int
	Grain Grain
}

// NewDemand builds a Demand with no grain constraint, the common case.
func NewDemand(w, h, qty int) Demand {
	return Demand{W: w, H: h, Qty: qty}
}

// Piece is a single unit of demand after expansion, carrying its position
// in the expanded list (unique per unit) as an identity index.
type Piece struct {
	W, H  int
	Index int
	Grain Grain
}

// Area returns W*H as an int64.
func (p Piece) Area() int64 {
	return int64(p.W) * int64(p.H)
}

// Placement is a single piece as placed on a sheet: its placed dimensions
// (after rotation), its position, and whether it was rotated.
type Placement struct {
	W, H, X, Y int
	Rotated    bool
}

// Area returns the placed footprint, W*H.
func (p Placement) Area() int64 {
	return int64(p.W) * int64(p.H)
}

// Sheet is one stock panel and the ordered list of pieces placed on it.
type Sheet struct {
	ID         string
	Placements []Placement
}

// NewSheet returns an empty sheet with a fresh short identifier. The ID
// never participates in any solver invariant; it exists so a caller can
// name a sheet in logs or output without relying on slice position.
func NewSheet() Sheet {
	return Sheet{ID: uuid.New().String()[:8]}
}

// UsedArea sums the area of every placement on the sheet.
func (s Sheet) UsedArea() int64 {
	var total int64
	for _, p := range s.Placements {
		total += p.Area()
	}
	return total
}

// Solution is the result of a solve: the sheets used, how many pieces were
// placed in total, and the waste fraction across all sheets combined.
type Solution struct {
	Sheets            []Sheet
	TotalPiecesPlaced int
	WastePercent      float64
}

// SheetCount returns the number of sheets in the solution.
func (sol Solution) SheetCount() int {
	return len(sol.Sheets)
}
