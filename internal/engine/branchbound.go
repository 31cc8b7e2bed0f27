package engine

import (
	"sort"

	"github.com/rlundgren/cutstock/internal/model"
)

// branchAndBound runs an exact search over placement orders, seeded with
// the greedy solution's sheet count as the initial upper bound. It
// returns nil when the piece count exceeds the complexity guard, or when
// no strictly better solution than the upper bound was found.
func branchAndBound(pieces []model.Piece, stockW, stockH, kerf int, allowRotation bool, upperBound int) []*Bin {
	if len(pieces) > branchAndBoundLimit {
		return nil
	}

	ub := upperBound
	var best []*Bin
	bbRecurse(pieces, 0, nil, stockW, stockH, kerf, allowRotation, &ub, &best)
	return best
}

// bbMove is a single candidate child of a branch-and-bound node: either a
// placement into an existing bin (binIndex >= 0) or the sole candidate
// for opening a new bin (binIndex == -1).
type bbMove struct {
	binIndex int
	cand     Candidate
}

func bbRecurse(pieces []model.Piece, idx int, bins []*Bin, stockW, stockH, kerf int, allowRotation bool, ub *int, best *[]*Bin) {
	if idx == len(pieces) {
		if len(bins) < *ub {
			*ub = len(bins)
			*best = cloneBins(bins)
		}
		return
	}

	if len(bins) >= *ub {
		return
	}

	piece := pieces[idx]
	remaining := pieces[idx:]

	var remainingArea int64
	for _, p := range remaining {
		remainingArea += p.Area()
	}
	var freeArea int64
	for _, b := range bins {
		freeArea += b.FreeArea()
	}
	stockArea := int64(stockW) * int64(stockH)

	var minExtraBins int64
	if remainingArea > freeArea {
		minExtraBins = ceilDiv(remainingArea-freeArea, stockArea)
	}
	lowerBound := len(bins) + int(minExtraBins)
	if lowerBound >= *ub {
		return
	}

	pieceRotate := pieceMayRotate(piece, allowRotation)

	var moves []bbMove
	for bi, bin := range bins {
		for _, c := range bin.AllCandidates(piece.W, piece.H, pieceRotate) {
			moves = append(moves, bbMove{binIndex: bi, cand: c})
		}
	}
	newBin := NewBin(stockW, stockH, kerf)
	if c, ok := newBin.FindBest(piece.W, piece.H, pieceRotate, BestAreaFit); ok {
		moves = append(moves, bbMove{binIndex: -1, cand: c})
	}

	// Children are explored in ascending order of Best Area Fit score;
	// ties break deterministically by bin index, then free rectangle
	// index, then non-rotated before rotated.
	sort.SliceStable(moves, func(i, j int) bool {
		if moves[i].cand.Score != moves[j].cand.Score {
			return moves[i].cand.Score < moves[j].cand.Score
		}
		if moves[i].binIndex != moves[j].binIndex {
			return moves[i].binIndex < moves[j].binIndex
		}
		if moves[i].cand.FreeIndex != moves[j].cand.FreeIndex {
			return moves[i].cand.FreeIndex < moves[j].cand.FreeIndex
		}
		return !moves[i].cand.Rotated && moves[j].cand.Rotated
	})

	for _, m := range moves {
		newBins := cloneBins(bins)
		if m.binIndex == -1 {
			nb := NewBin(stockW, stockH, kerf)
			nb.Place(m.cand)
			newBins = append(newBins, nb)
		} else {
			newBins[m.binIndex].Place(m.cand)
		}
		bbRecurse(pieces, idx+1, newBins, stockW, stockH, kerf, allowRotation, ub, best)
	}
}

// cloneBins deep-copies a bin list so sibling search branches never share
// mutable free-rectangle or placement state.
func cloneBins(bins []*Bin) []*Bin {
	out := make([]*Bin, len(bins))
	for i, b := range bins {
		out[i] = b.Clone()
	}
	return out
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
