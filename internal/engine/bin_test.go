package engine

import (
	"testing"

	"github.com/rlundgren/cutstock/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// (a) After place on a 100x100 bin of a 50x100 piece with kerf 5, the
// remaining single free rectangle has width 100-50-5=45 and height 100.
func TestBin_KerfLeavesExpectedRemainder(t *testing.T) {
	bin := NewBin(100, 100, 5)
	c, ok := bin.FindBest(50, 100, false, BestAreaFit)
	require.True(t, ok)
	bin.Place(c)

	require.Equal(t, 1, bin.FreeRectCount())
	free := bin.FreeRects()[0]
	assert.Equal(t, 45, free.W)
	assert.Equal(t, 100, free.H)
}

// (b) Exact-fit placement leaves the free list empty.
func TestBin_ExactFitEmptiesFreeList(t *testing.T) {
	bin := NewBin(100, 100, 0)
	c, ok := bin.FindBest(100, 100, false, BestAreaFit)
	require.True(t, ok)
	bin.Place(c)
	assert.Equal(t, 0, bin.FreeRectCount())
}

// (c) find_best returns "no fit" for a piece exceeding every free
// rectangle on both axes, even after considering rotation.
func TestBin_FindBestNoFit(t *testing.T) {
	bin := NewBin(100, 100, 0)
	_, ok := bin.FindBest(150, 150, true, BestAreaFit)
	assert.False(t, ok)
}

func TestBin_RotationRequiredToFit(t *testing.T) {
	bin := NewBin(100, 50, 0)
	_, ok := bin.FindBest(50, 100, false, BestAreaFit)
	assert.False(t, ok, "without rotation a 50x100 piece should not fit a 100x50 bin")

	c, ok := bin.FindBest(50, 100, true, BestAreaFit)
	require.True(t, ok)
	assert.True(t, c.Rotated)
	assert.Equal(t, 100, c.W)
	assert.Equal(t, 50, c.H)
}

func TestBin_PlaceRecordsPositionAndOrientation(t *testing.T) {
	bin := NewBin(100, 100, 0)
	c, ok := bin.FindBest(50, 30, false, BestAreaFit)
	require.True(t, ok)
	p := bin.Place(c)
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
	assert.Equal(t, 50, p.W)
	assert.Equal(t, 30, p.H)
	assert.False(t, p.Rotated)
}

func TestBin_LongerAxisSplitDirection(t *testing.T) {
	// 100x100 stock, 40x30 piece: F.w (100) >= F.h (100) so the split is
	// vertical — a right strip and a top strip.
	bin := NewBin(100, 100, 0)
	c, _ := bin.FindBest(40, 30, false, BestAreaFit)
	bin.Place(c)

	free := bin.FreeRects()
	require.Len(t, free, 2)
	assertHasRect(t, free, 60, 100) // right strip: dw=60, full height
	assertHasRect(t, free, 40, 70)  // top strip: piece width, dh=70
}

func TestBin_SplitAlongWidthAxisForcesVerticalSplit(t *testing.T) {
	// Same 100x100 stock, 40x30 piece as TestBin_LongerAxisSplitDirection,
	// but with the split axis pinned rather than derived from the free
	// rectangle's aspect ratio.
	bin := NewBinWithSplitPolicy(100, 100, 0, SplitAlongWidthAxis)
	c, ok := bin.FindBest(40, 30, false, BestAreaFit)
	require.True(t, ok)
	bin.Place(c)

	free := bin.FreeRects()
	require.Len(t, free, 2)
	assertHasRect(t, free, 60, 100)
	assertHasRect(t, free, 40, 70)
}

func TestBin_SplitAlongHeightAxisForcesHorizontalSplit(t *testing.T) {
	bin := NewBinWithSplitPolicy(100, 100, 0, SplitAlongHeightAxis)
	c, ok := bin.FindBest(40, 30, false, BestAreaFit)
	require.True(t, ok)
	bin.Place(c)

	free := bin.FreeRects()
	require.Len(t, free, 2)
	assertHasRect(t, free, 100, 70)
	assertHasRect(t, free, 60, 30)
}

func TestBin_SplitPoliciesProduceDifferentSplits(t *testing.T) {
	widthAxis := NewBinWithSplitPolicy(100, 100, 0, SplitAlongWidthAxis)
	cw, ok := widthAxis.FindBest(40, 30, false, BestAreaFit)
	require.True(t, ok)
	widthAxis.Place(cw)

	heightAxis := NewBinWithSplitPolicy(100, 100, 0, SplitAlongHeightAxis)
	ch, ok := heightAxis.FindBest(40, 30, false, BestAreaFit)
	require.True(t, ok)
	heightAxis.Place(ch)

	assert.NotEqual(t, widthAxis.FreeRects(), heightAxis.FreeRects())
}

func TestBin_FreeAreaAndUsedArea(t *testing.T) {
	bin := NewBin(100, 100, 0)
	assert.Equal(t, int64(10000), bin.FreeArea())
	c, _ := bin.FindBest(50, 50, false, BestAreaFit)
	bin.Place(c)
	assert.Equal(t, int64(2500), bin.UsedArea())
	assert.Equal(t, int64(7500), bin.FreeArea())
}

func TestBin_CloneIsIndependent(t *testing.T) {
	bin := NewBin(100, 100, 0)
	c, _ := bin.FindBest(50, 50, false, BestAreaFit)
	bin.Place(c)

	clone := bin.Clone()
	c2, ok := clone.FindBest(50, 50, false, BestAreaFit)
	require.True(t, ok)
	clone.Place(c2)

	assert.Equal(t, 1, len(bin.Placements))
	assert.Equal(t, 2, len(clone.Placements))
}

func assertHasRect(t *testing.T, rects []model.Rect, w, h int) {
	t.Helper()
	for _, r := range rects {
		if r.W == w && r.H == h {
			return
		}
	}
	t.Fatalf("expected a %dx%d free rectangle among %v", w, h, rects)
}
