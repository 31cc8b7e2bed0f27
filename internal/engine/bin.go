package engine

import "github.com/rlundgren/cutstock/internal/model"

// Strategy selects how Bin.FindBest scores candidate placements.
type Strategy int

const (
	BestAreaFit Strategy = iota
	BestShortSideFit
	BestLongSideFit
)

func (s Strategy) String() string {
	switch s {
	case BestShortSideFit:
		return "BestShortSideFit"
	case BestLongSideFit:
		return "BestLongSideFit"
	default:
		return "BestAreaFit"
	}
}

// SplitPolicy picks the axis a Bin splits along after a placement.
// SplitLongerAxis derives the axis from each free rectangle's own
// aspect ratio; the other two let a caller bias every cut to run one
// way, the way a CNC operator might orient a sheet for fewer direction
// changes.
type SplitPolicy int

const (
	SplitLongerAxis SplitPolicy = iota
	SplitAlongWidthAxis
	SplitAlongHeightAxis
)

// Candidate is a scored, fully-resolved placement opportunity: which free
// rectangle it targets, the orientation chosen, and the resulting score.
type Candidate struct {
	FreeIndex int
	W, H      int
	X, Y      int
	Rotated   bool
	Score     int64
}

// Bin is the free-rectangle list for one stock panel, plus the placements
// already made on it.
type Bin struct {
	ID          string
	StockW      int
	StockH      int
	Kerf        int
	SplitPolicy SplitPolicy

	freeRects  []model.Rect
	Placements []model.Placement
}

// NewBin opens a bin for a W x H panel with the default longer-axis split.
func NewBin(w, h, kerf int) *Bin {
	return NewBinWithSplitPolicy(w, h, kerf, SplitLongerAxis)
}

// NewBinWithSplitPolicy opens a bin with an explicit split policy. Solve
// never calls this directly; it always uses NewBin, so this extension
// point has no effect on Solve's default behavior.
func NewBinWithSplitPolicy(w, h, kerf int, policy SplitPolicy) *Bin {
	return &Bin{
		StockW:      w,
		StockH:      h,
		Kerf:        kerf,
		SplitPolicy: policy,
		freeRects:   []model.Rect{{X: 0, Y: 0, W: w, H: h}},
	}
}

// Clone returns a Bin with independently-owned free-rect and placement
// slices, so branch-and-bound can fan out children without aliasing
// mutable state across siblings.
func (b *Bin) Clone() *Bin {
	clone := &Bin{
		ID:          b.ID,
		StockW:      b.StockW,
		StockH:      b.StockH,
		Kerf:        b.Kerf,
		SplitPolicy: b.SplitPolicy,
	}
	clone.freeRects = append([]model.Rect(nil), b.freeRects...)
	clone.Placements = append([]model.Placement(nil), b.Placements...)
	return clone
}

// FreeArea sums the area of every free rectangle.
func (b *Bin) FreeArea() int64 {
	var total int64
	for _, f := range b.freeRects {
		total += f.Area()
	}
	return total
}

// UsedArea sums the area of every placement already made on the bin.
func (b *Bin) UsedArea() int64 {
	var total int64
	for _, p := range b.Placements {
		total += p.Area()
	}
	return total
}

// FreeRectCount reports how many free rectangles remain, for tests that
// probe the bin's internal state directly.
func (b *Bin) FreeRectCount() int {
	return len(b.freeRects)
}

// FreeRects returns a copy of the current free-rectangle list.
func (b *Bin) FreeRects() []model.Rect {
	return append([]model.Rect(nil), b.freeRects...)
}

// score computes a strategy's leftover-space score for placing a w x h
// piece into free rectangle f. Lower is better for all three strategies.
func score(strategy Strategy, f model.Rect, w, h int) int64 {
	dw := int64(f.W - w)
	dh := int64(f.H - h)
	switch strategy {
	case BestShortSideFit:
		return minInt64(dw, dh)
	case BestLongSideFit:
		return maxInt64(dw, dh)
	default: // BestAreaFit
		return f.Area() - int64(w)*int64(h)
	}
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// FindBest scans the free rectangles in list order and returns the
// lowest-scoring admissible placement for a pieceW x pieceH piece. Ties
// are broken by encounter order: earliest free rectangle first, and
// within a free rectangle the non-rotated orientation before the rotated
// one. Returns ok=false when no orientation fits anywhere.
func (b *Bin) FindBest(pieceW, pieceH int, allowRotation bool, strategy Strategy) (Candidate, bool) {
	var best Candidate
	found := false

	for idx, f := range b.freeRects {
		if f.Fits(pieceW, pieceH) {
			s := score(strategy, f, pieceW, pieceH)
			if !found || s < best.Score {
				best = Candidate{FreeIndex: idx, W: pieceW, H: pieceH, X: f.X, Y: f.Y, Rotated: false, Score: s}
				found = true
			}
		}
		if allowRotation && f.Fits(pieceH, pieceW) {
			s := score(strategy, f, pieceH, pieceW)
			if !found || s < best.Score {
				best = Candidate{FreeIndex: idx, W: pieceH, H: pieceW, X: f.X, Y: f.Y, Rotated: true, Score: s}
				found = true
			}
		}
	}

	return best, found
}

// AllCandidates enumerates every admissible (free rectangle, orientation)
// placement for a piece, each scored under Best Area Fit. Branch-and-bound
// uses this to build its full child set; FindBest alone only ever returns
// the single best one, which is not enough for exhaustive search.
func (b *Bin) AllCandidates(pieceW, pieceH int, allowRotation bool) []Candidate {
	var out []Candidate
	for idx, f := range b.freeRects {
		if f.Fits(pieceW, pieceH) {
			out = append(out, Candidate{
				FreeIndex: idx, W: pieceW, H: pieceH, X: f.X, Y: f.Y, Rotated: false,
				Score: score(BestAreaFit, f, pieceW, pieceH),
			})
		}
		if allowRotation && f.Fits(pieceH, pieceW) {
			out = append(out, Candidate{
				FreeIndex: idx, W: pieceH, H: pieceW, X: f.X, Y: f.Y, Rotated: true,
				Score: score(BestAreaFit, f, pieceH, pieceW),
			})
		}
	}
	return out
}

// Place commits a candidate produced by FindBest or AllCandidates: it
// removes the targeted free rectangle, records the placement, splits the
// remainder along the guillotine cut, and prunes any free rectangle that
// ended up wholly contained in another.
func (b *Bin) Place(c Candidate) model.Placement {
	f := b.freeRects[c.FreeIndex]

	placement := model.Placement{W: c.W, H: c.H, X: f.X, Y: f.Y, Rotated: c.Rotated}

	b.freeRects = append(b.freeRects[:c.FreeIndex], b.freeRects[c.FreeIndex+1:]...)
	b.freeRects = append(b.freeRects, b.split(f, c.W, c.H)...)
	b.Placements = append(b.Placements, placement)
	b.freeRects = pruneDominated(b.freeRects)

	return placement
}

// split computes the leftover free rectangles after placing a w x h
// piece into free rectangle f, where dw = f.W - w and dh = f.H - h. When
// both leftovers exceed the kerf, the longer axis of f decides whether
// the cut runs vertically (wide f) or horizontally (tall f);
// SplitAlongWidthAxis/SplitAlongHeightAxis override that choice instead
// of deriving it from f's aspect ratio.
func (b *Bin) split(f model.Rect, w, h int) []model.Rect {
	dw := f.W - w
	dh := f.H - h
	kerf := b.Kerf

	switch {
	case dw > kerf && dh > kerf:
		splitVertically := f.W >= f.H
		switch b.SplitPolicy {
		case SplitAlongWidthAxis:
			splitVertically = true
		case SplitAlongHeightAxis:
			splitVertically = false
		}
		if splitVertically {
			right := model.Rect{X: f.X + w + kerf, Y: f.Y, W: dw - kerf, H: f.H}
			top := model.Rect{X: f.X, Y: f.Y + h + kerf, W: w, H: dh - kerf}
			return []model.Rect{right, top}
		}
		bottom := model.Rect{X: f.X, Y: f.Y + h + kerf, W: f.W, H: dh - kerf}
		left := model.Rect{X: f.X + w + kerf, Y: f.Y, W: dw - kerf, H: h}
		return []model.Rect{bottom, left}
	case dw > kerf:
		return []model.Rect{{X: f.X + w + kerf, Y: f.Y, W: dw - kerf, H: f.H}}
	case dh > kerf:
		return []model.Rect{{X: f.X, Y: f.Y + h + kerf, W: f.W, H: dh - kerf}}
	default:
		return nil
	}
}

// pruneDominated drops any free rectangle wholly contained in another,
// keeping the list compact. It is not required for correctness —
// survivors keep their relative order.
func pruneDominated(rects []model.Rect) []model.Rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]model.Rect, 0, len(rects))
	for i, a := range rects {
		dominated := false
		for j, b := range rects {
			if i != j && contains(b, a) && !(contains(a, b) && j < i) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, a)
		}
	}
	return kept
}

// contains reports whether outer wholly contains inner.
func contains(outer, inner model.Rect) bool {
	return outer.X <= inner.X && outer.Y <= inner.Y &&
		outer.X+outer.W >= inner.X+inner.W &&
		outer.Y+outer.H >= inner.Y+inner.H
}
