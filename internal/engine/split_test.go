package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/depotplan/internal/geom"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rect(a, b, x, y string) geom.Rect {
	return geom.New(d(a), d(b), d(x), d(y))
}

func assertRect(t *testing.T, want, got geom.Rect, msg string) {
	t.Helper()
	assert.True(t, want.A.Equal(got.A) && want.B.Equal(got.B) && want.X.Equal(got.X) && want.Y.Equal(got.Y),
		"%s: want %s, got %s", msg, want, got)
}

func TestSplitCornerPlacement(t *testing.T) {
	// Item in the bottom-left corner of the available leaves a strip above
	// and a strip to the right, overlapping in the top-right.
	av := rect("10", "10", "0", "0")
	item := rect("5", "5", "0", "0")

	parts, err := splitAvailable(av, item, false)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assertRect(t, rect("10", "5", "0", "5"), parts[0], "strip above the item")
	assertRect(t, rect("5", "10", "5", "0"), parts[1], "strip right of the item")
}

func TestSplitFlushColumn(t *testing.T) {
	// Item spans the full width: only the strip above remains.
	av := rect("20", "20", "0", "0")
	item := rect("20", "1", "0", "0")

	parts, err := splitAvailable(av, item, false)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assertRect(t, rect("20", "19", "0", "1"), parts[0], "strip above a full-width item")
}

func TestSplitExactFillConsumesAvailable(t *testing.T) {
	av := rect("5", "10", "5", "0")
	item := rect("5", "10", "5", "0")

	parts, err := splitAvailable(av, item, false)
	require.NoError(t, err)
	assert.Empty(t, parts, "an exactly filled available leaves nothing")
}

func TestSplitItemCoversAvailable(t *testing.T) {
	// The item overhangs the available on all sides.
	av := rect("2", "2", "4", "4")
	item := rect("10", "10", "0", "0")

	parts, err := splitAvailable(av, item, false)
	require.NoError(t, err)
	assert.Empty(t, parts, "a fully covered available leaves nothing")
}

func TestSplitOverhangTopRight(t *testing.T) {
	// The item sits on the available's top-right region, overhanging both
	// far edges; strips remain below and to the left.
	av := rect("8", "8", "2", "2")
	item := rect("6", "6", "6", "6")

	parts, err := splitAvailable(av, item, false)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assertRect(t, rect("8", "4", "2", "2"), parts[0], "strip below the item")
	assertRect(t, rect("4", "8", "2", "2"), parts[1], "strip left of the item")
}

func TestSplitEnclosedItem(t *testing.T) {
	av := rect("10", "10", "0", "0")
	item := rect("2", "2", "4", "4")

	_, err := splitAvailable(av, item, false)
	assert.ErrorIs(t, err, ErrInternal, "enclosed item is impossible without displacement")

	parts, err := splitAvailable(av, item, true)
	require.NoError(t, err)
	require.Len(t, parts, 4)
	assertRect(t, rect("10", "4", "0", "0"), parts[0], "strip below")
	assertRect(t, rect("10", "4", "0", "6"), parts[1], "strip above")
	assertRect(t, rect("4", "10", "0", "0"), parts[2], "strip left")
	assertRect(t, rect("4", "10", "6", "0"), parts[3], "strip right")
}

func TestSplitFlushEdgesProduceNoDegenerateStrips(t *testing.T) {
	// Item flush with the left and bottom edges of a bigger available must
	// not yield zero-width strips on the flush sides.
	av := rect("10", "10", "0", "0")
	item := rect("4", "10", "0", "0")

	parts, err := splitAvailable(av, item, false)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assertRect(t, rect("6", "10", "4", "0"), parts[0], "only the right strip remains")
	for _, p := range parts {
		assert.False(t, p.Empty(), "split strips must have positive area")
	}
}

func TestPruneContained(t *testing.T) {
	avs := []geom.Rect{
		rect("10", "10", "0", "0"),
		rect("4", "4", "2", "2"),  // inside the first
		rect("5", "5", "20", "0"), // disjoint
	}
	kept := pruneContained(avs)
	require.Len(t, kept, 2)
	assertRect(t, rect("10", "10", "0", "0"), kept[0], "container survives")
	assertRect(t, rect("5", "5", "20", "0"), kept[1], "disjoint rect survives")
}

func TestPruneContainedDuplicates(t *testing.T) {
	avs := []geom.Rect{
		rect("5", "5", "0", "0"),
		rect("5", "5", "0", "0"),
	}
	kept := pruneContained(avs)
	assert.Len(t, kept, 1, "of identical availables exactly one survives")
}

func TestSortAvailablesOrder(t *testing.T) {
	avs := []geom.Rect{
		rect("16", "10", "14", "0"),
		rect("30", "2", "0", "0"),
		rect("4", "10", "0", "0"),
		rect("30", "2", "0", "8"),
	}
	sortAvailables(avs)

	assertRect(t, rect("30", "2", "0", "0"), avs[0], "shallow strips first, stable for ties")
	assertRect(t, rect("30", "2", "0", "8"), avs[1], "shallow strips first, stable for ties")
	assertRect(t, rect("4", "10", "0", "0"), avs[2], "equal height ordered by width")
	assertRect(t, rect("16", "10", "14", "0"), avs[3], "equal height ordered by width")
}
