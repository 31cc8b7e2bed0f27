package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rlundgren/cutstock/internal/model"
)

// branchAndBoundLimit caps the piece count branch and bound will attempt;
// above this it is skipped and the greedy result stands on its own.
const branchAndBoundLimit = 20

// Solve is the core entry point: given a stock size, a list of demands,
// a kerf, and whether rotation is permitted, it returns the best solution
// found or an error describing why no solution exists.
func Solve(stockW, stockH int, demands []model.Demand, kerf int, allowRotation bool) (model.Solution, error) {
	if stockW <= 0 || stockH <= 0 {
		return model.Solution{}, fmt.Errorf("%w: stock dimensions must be positive, got %dx%d", ErrInvalidInput, stockW, stockH)
	}
	if kerf < 0 {
		return model.Solution{}, fmt.Errorf("%w: kerf must be non-negative, got %d", ErrInvalidInput, kerf)
	}
	for _, d := range demands {
		if d.W <= 0 || d.H <= 0 {
			return model.Solution{}, fmt.Errorf("%w: demand dimensions must be positive, got %dx%d", ErrInvalidInput, d.W, d.H)
		}
		if d.Qty < 0 {
			return model.Solution{}, fmt.Errorf("%w: demand quantity must be non-negative, got %d", ErrInvalidInput, d.Qty)
		}
	}

	pieces := expandAndSort(demands)
	if len(pieces) == 0 {
		return model.Solution{Sheets: nil, TotalPiecesPlaced: 0, WastePercent: 0}, nil
	}

	for _, p := range pieces {
		fitsNormal := p.W <= stockW && p.H <= stockH
		fitsRotated := pieceMayRotate(p, allowRotation) && p.H <= stockW && p.W <= stockH
		if !fitsNormal && !fitsRotated {
			return model.Solution{}, fmt.Errorf("%w: piece %dx%d does not fit an empty %dx%d panel", ErrInfeasiblePiece, p.W, p.H, stockW, stockH)
		}
	}

	greedyBins, err := greedyBest(pieces, stockW, stockH, kerf, allowRotation)
	if err != nil {
		return model.Solution{}, err
	}

	bbBins := branchAndBound(pieces, stockW, stockH, kerf, allowRotation, len(greedyBins))

	best := greedyBins
	if bbBins != nil && len(bbBins) < len(best) {
		best = bbBins
	}

	return binsToSolution(best, stockW, stockH, len(pieces)), nil
}

// expandAndSort turns each demand into one Piece per unit of quantity and
// orders them by descending long side, then descending short side, then
// descending area — the decreasing-longest-side heuristic. Ties (equal on
// all three keys) keep their original expansion order for determinism.
func expandAndSort(demands []model.Demand) []model.Piece {
	var pieces []model.Piece
	idx := 0
	for _, d := range demands {
		for i := 0; i < d.Qty; i++ {
			pieces = append(pieces, model.Piece{W: d.W, H: d.H, Index: idx, Grain: d.Grain})
			idx++
		}
	}

	longSide := func(p model.Piece) int {
		if p.W > p.H {
			return p.W
		}
		return p.H
	}
	shortSide := func(p model.Piece) int {
		if p.W < p.H {
			return p.W
		}
		return p.H
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		a, b := pieces[i], pieces[j]
		if ls := longSide(a); ls != longSide(b) {
			return ls > longSide(b)
		}
		if ss := shortSide(a); ss != shortSide(b) {
			return ss > shortSide(b)
		}
		if a.Area() != b.Area() {
			return a.Area() > b.Area()
		}
		return a.Index < b.Index
	})

	return pieces
}

// greedyBest runs the greedy driver under all three scoring strategies
// and keeps the lexicographically best result. The strategies share no
// state, so this runs them concurrently with a WaitGroup and merges
// deterministically — equal-metric ties resolve to the earliest strategy
// in the fixed order BAF, BSSF, BLSF.
func greedyBest(pieces []model.Piece, stockW, stockH, kerf int, allowRotation bool) ([]*Bin, error) {
	strategies := []Strategy{BestAreaFit, BestShortSideFit, BestLongSideFit}
	results := make([][]*Bin, len(strategies))
	errs := make([]error, len(strategies))

	var wg sync.WaitGroup
	for i, strat := range strategies {
		wg.Add(1)
		go func(i int, strat Strategy) {
			defer wg.Done()
			bins, err := greedySolve(pieces, stockW, stockH, kerf, allowRotation, strat)
			results[i] = bins
			errs[i] = err
		}(i, strat)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	bestIdx := 0
	for i := 1; i < len(results); i++ {
		if greedyBetter(results[i], results[bestIdx]) {
			bestIdx = i
		}
	}
	return results[bestIdx], nil
}

// greedyBetter compares two candidate bin lists on (sheet count
// ascending, area used in the last sheet descending). Equal on both
// metrics counts as "not better" so the earlier-evaluated strategy wins
// ties.
func greedyBetter(candidate, incumbent []*Bin) bool {
	if len(candidate) != len(incumbent) {
		return len(candidate) < len(incumbent)
	}
	if len(candidate) == 0 {
		return false
	}
	cUsed := candidate[len(candidate)-1].UsedArea()
	iUsed := incumbent[len(incumbent)-1].UsedArea()
	return cUsed > iUsed
}

// pieceMayRotate resolves the global rotation flag against a piece's grain
// lock: a piece with a declared grain direction (along or across) must keep
// its cut orientation, so it never rotates regardless of the global flag.
func pieceMayRotate(p model.Piece, allowRotation bool) bool {
	return allowRotation && p.Grain == model.GrainNone
}

// greedySolve places every piece, in order, into the best-scoring open
// bin under the given strategy, opening a new bin when none of the
// existing ones fit.
func greedySolve(pieces []model.Piece, stockW, stockH, kerf int, allowRotation bool, strategy Strategy) ([]*Bin, error) {
	var bins []*Bin

	for _, piece := range pieces {
		bestBin := -1
		var bestCandidate Candidate
		found := false
		pieceRotate := pieceMayRotate(piece, allowRotation)

		for bi, bin := range bins {
			if c, ok := bin.FindBest(piece.W, piece.H, pieceRotate, strategy); ok {
				if !found || c.Score < bestCandidate.Score {
					bestBin = bi
					bestCandidate = c
					found = true
				}
			}
		}

		if found {
			bins[bestBin].Place(bestCandidate)
			continue
		}

		bin := NewBin(stockW, stockH, kerf)
		c, ok := bin.FindBest(piece.W, piece.H, pieceRotate, strategy)
		if !ok {
			return nil, fmt.Errorf("%w: piece %dx%d does not fit an empty %dx%d panel", ErrInfeasiblePiece, piece.W, piece.H, stockW, stockH)
		}
		bin.Place(c)
		bins = append(bins, bin)
	}

	return bins, nil
}

// binsToSolution converts a finished bin list into the public Solution
// value, computing the waste fraction across every sheet used.
func binsToSolution(bins []*Bin, stockW, stockH, totalPieces int) model.Solution {
	if len(bins) == 0 {
		return model.Solution{Sheets: nil, TotalPiecesPlaced: totalPieces, WastePercent: 0}
	}

	sheets := make([]model.Sheet, len(bins))
	var usedTotal int64
	for i, bin := range bins {
		sheet := model.NewSheet()
		sheet.Placements = append(sheet.Placements, bin.Placements...)
		sheets[i] = sheet
		usedTotal += bin.UsedArea()
	}

	stockArea := int64(stockW) * int64(stockH)
	totalStockArea := stockArea * int64(len(bins))
	waste := 0.0
	if totalStockArea > 0 {
		waste = float64(totalStockArea-usedTotal) / float64(totalStockArea) * 100.0
	}

	return model.Solution{
		Sheets:            sheets,
		TotalPiecesPlaced: totalPieces,
		WastePercent:      waste,
	}
}
