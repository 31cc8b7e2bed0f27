package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFits(t *testing.T) {
	r := Rect{W: 100, H: 50}
	assert.True(t, r.Fits(100, 50))
	assert.True(t, r.Fits(50, 20))
	assert.False(t, r.Fits(101, 50))
	assert.False(t, r.Fits(100, 51))
}

func TestRectArea(t *testing.T) {
	r := Rect{W: 100, H: 50}
	assert.Equal(t, int64(5000), r.Area())
}

func TestNewDemandHasNoGrainConstraint(t *testing.T) {
	d := NewDemand(50, 50, 4)
	assert.Equal(t, GrainNone, d.Grain)
	assert.Equal(t, 4, d.Qty)
}

func TestSheetUsedArea(t *testing.T) {
	s := NewSheet()
	s.Placements = append(s.Placements,
		Placement{W: 50, H: 50, X: 0, Y: 0},
		Placement{W: 50, H: 50, X: 50, Y: 0},
	)
	assert.Equal(t, int64(5000), s.UsedArea())
	assert.NotEmpty(t, s.ID)
}

func TestSolutionSheetCount(t *testing.T) {
	sol := Solution{Sheets: []Sheet{NewSheet(), NewSheet()}}
	assert.Equal(t, 2, sol.SheetCount())
}

func TestGrainString(t *testing.T) {
	assert.Equal(t, "None", GrainNone.String())
	assert.Equal(t, "Along", GrainAlong.String())
	assert.Equal(t, "Across", GrainAcross.String())
}
