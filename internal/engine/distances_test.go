package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/depotplan/internal/model"
)

// bufferedItem is a rectItem with explicit buffer depths (left, bottom,
// right, top).
func bufferedItem(t *testing.T, a, b, l, bt, r, tp string) *model.Area {
	t.Helper()
	ar := rectItem(t, a, b)
	ar.BufLeft = d(l)
	ar.BufBottom = d(bt)
	ar.BufRight = d(r)
	ar.BufTop = d(tp)
	return ar
}

func uniform(c string) model.EdgeClearance {
	return model.UniformClearance(d(c))
}

func TestClearanceShiftsOffBothEdges(t *testing.T) {
	bin := NewBinWithDistances(d("20"), d("20"), uniform("2"))
	bin.AddItem(rectItem(t, "5", "5"))

	require.NoError(t, bin.Pack())
	require.True(t, bin.Feasible())
	placed := bin.PackedItems[0]
	assert.True(t, placed.X.Equal(d("2")), "shifted off the left clearance strip, got %s", placed.X)
	assert.True(t, placed.Y.Equal(d("2")), "shifted off the bottom clearance strip, got %s", placed.Y)
}

func TestBufferDeeperThanClearanceWins(t *testing.T) {
	bin := NewBinWithDistances(d("30"), d("30"), uniform("2"))
	bin.AddItem(bufferedItem(t, "5", "5", "4", "3", "0", "0"))

	require.NoError(t, bin.Pack())
	require.True(t, bin.Feasible())
	placed := bin.PackedItems[0]
	assert.True(t, placed.X.Equal(d("4")), "left buffer exceeds the clearance, got %s", placed.X)
	assert.True(t, placed.Y.Equal(d("3")), "bottom buffer exceeds the clearance, got %s", placed.Y)
}

func TestClearanceLeavesNoRoom(t *testing.T) {
	// 10x10 plot with 4 clearance everywhere leaves a 2x2 usable core.
	bin := NewBinWithDistances(d("10"), d("10"), uniform("4"))
	bin.AddItem(rectItem(t, "5", "5"))

	require.NoError(t, bin.Pack())
	assert.False(t, bin.Feasible(), "the item cannot escape the clearance strips")
}

func TestSideBufferedItemsKeepTheirGap(t *testing.T) {
	// Two items with 4-deep side buffers in a 30x10 plot with uniform
	// clearance 2: both fit, 4 apart, and the second item's right buffer is
	// cut off at the plot boundary.
	bin := NewBinWithDistances(d("30"), d("10"), uniform("2"))
	bin.AddItem(bufferedItem(t, "10", "6", "4", "0", "4", "0"))
	bin.AddItem(bufferedItem(t, "10", "6", "4", "0", "4", "0"))

	require.NoError(t, bin.Pack())
	require.True(t, bin.Feasible(), "both buffered items fit the usable width")
	require.Len(t, bin.PackedItems, 2)

	first, second := bin.PackedItems[0], bin.PackedItems[1]
	assert.True(t, first.X.Equal(d("4")), "first item shifted by its own buffer, got %s", first.X)
	assert.True(t, first.Y.Equal(d("2")), "first item shifted by the clearance, got %s", first.Y)

	gap := second.Outer().Left().Sub(first.Outer().Right())
	assert.True(t, gap.GreaterThanOrEqual(d("4")), "gap %s must cover the facing buffers", gap)
	assert.True(t, second.Outer().Right().LessThanOrEqual(d("28")), "second item clear of the right strip")
}

func TestVerticalBuffersStackWithGap(t *testing.T) {
	bin := NewBinWithDistances(d("20"), d("20"), model.EdgeClearance{})
	bin.AddItem(bufferedItem(t, "4", "4", "0", "3", "0", "3"))
	bin.AddItem(bufferedItem(t, "4", "4", "0", "3", "0", "3"))

	require.NoError(t, bin.Pack())
	require.True(t, bin.Feasible())

	lower, upper := bin.PackedItems[0], bin.PackedItems[1]
	if lower.Y.GreaterThan(upper.Y) {
		lower, upper = upper, lower
	}
	assert.True(t, lower.Y.Equal(d("3")), "bottom buffer keeps the item off the plot edge, got %s", lower.Y)
	gap := upper.Outer().Bottom().Sub(lower.Outer().Top())
	assert.True(t, gap.GreaterThanOrEqual(d("3")), "vertical gap %s must cover the facing buffers", gap)
}

func TestZeroClearanceBehavesLikePlainBin(t *testing.T) {
	bin := NewBinWithDistances(d("10"), d("10"), model.EdgeClearance{})
	bin.AddItem(rectItem(t, "5", "5"))

	require.NoError(t, bin.Pack())
	require.True(t, bin.Feasible())
	placed := bin.PackedItems[0]
	assert.True(t, placed.X.IsZero() && placed.Y.IsZero(), "no clearance, no displacement")
}

func TestDisplacedItemSplitsAvailableFourWays(t *testing.T) {
	// A displaced item ends up strictly inside the full-plot available; the
	// update must yield strips on all four sides.
	bin := NewBinWithDistances(d("30"), d("10"), uniform("2"))
	bin.AddItem(bufferedItem(t, "10", "6", "4", "0", "4", "0"))

	require.NoError(t, bin.Pack())
	require.True(t, bin.Feasible())
	assert.Len(t, bin.Availables, 4, "strips below, above, left and right of the displaced item")
}

func TestTopClearanceRejectsTallItem(t *testing.T) {
	bin := NewBinWithDistances(d("20"), d("10"), model.EdgeClearance{Top: d("3")})
	bin.AddItem(rectItem(t, "5", "8"))

	require.NoError(t, bin.Pack())
	assert.False(t, bin.Feasible(), "the item would reach into the top clearance strip")
}

func TestRepackWithDistances(t *testing.T) {
	bin := NewBinWithDistances(d("30"), d("10"), uniform("2"))
	bin.AddItem(bufferedItem(t, "10", "6", "4", "0", "4", "0"))
	require.NoError(t, bin.Pack())
	require.True(t, bin.Feasible())

	bin.AddItem(bufferedItem(t, "10", "6", "4", "0", "4", "0"))
	require.NoError(t, bin.Repack())
	assert.True(t, bin.Feasible())
	assert.Len(t, bin.PackedItems, 2)
}
