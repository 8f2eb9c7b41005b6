package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func hoistTable() *StateTable[Hoist] {
	in := LinearConversion(rotationsPerInch)
	return NewStateTable(
		FromUnits[Hoist](0.5, in),
		StateEntry[Hoist]{Name: Home, Value: FromRaw[Hoist](0)},
		StateEntry[Hoist]{Name: L1, Value: FromUnits[Hoist](12, in)},
		StateEntry[Hoist]{Name: L2, Value: FromUnits[Hoist](18, in)},
		StateEntry[Hoist]{Name: L3, Value: FromUnits[Hoist](33, in)},
		StateEntry[Hoist]{Name: L4, Value: FromUnits[Hoist](58, in)},
	)
}

func TestClassifyExactValues(t *testing.T) {
	table := hoistTable()
	for _, e := range table.Entries() {
		name, ok := table.Classify(e.Value)
		require.True(t, ok)
		require.Equal(t, e.Name, name)
	}
}

func TestClassifyFromInches(t *testing.T) {
	table := hoistTable()
	require.InDelta(t, 0.8299, table.Tolerance().Raw(), 1e-4)

	name, ok := table.Classify(FromUnits[Hoist](12, LinearConversion(rotationsPerInch)))
	require.True(t, ok)
	require.Equal(t, L1, name)

	_, ok = table.Classify(FromUnits[Hoist](25, LinearConversion(rotationsPerInch)))
	require.False(t, ok)
}

func TestClassifyBoundary(t *testing.T) {
	table := hoistTable()
	tol := table.Tolerance()

	for _, e := range table.Entries() {
		upper := e.Value.Add(&tol)
		name, ok := table.Classify(upper)
		require.True(t, ok, "upper edge of %s", e.Name)
		require.Equal(t, e.Name, name)

		lower := e.Value.Sub(&tol)
		name, ok = table.Classify(lower)
		require.True(t, ok, "lower edge of %s", e.Name)
		require.Equal(t, e.Name, name)

		outside := FromRaw[Hoist](math.Nextafter(upper.Raw(), math.Inf(1)))
		_, ok = table.Classify(outside)
		require.False(t, ok, "just above %s", e.Name)
	}
}

func TestClassifyOverlapEarlierWins(t *testing.T) {
	table := NewStateTable(
		FromRaw[Clamp](1),
		StateEntry[Clamp]{Name: Open, Value: FromRaw[Clamp](0)},
		StateEntry[Clamp]{Name: Closed, Value: FromRaw[Clamp](1.5)},
	)

	name, ok := table.Classify(FromRaw[Clamp](0.75))
	require.True(t, ok)
	require.Equal(t, Open, name)

	// 0.9 попадает в обе полосы: [-1, 1] и [0.5, 2.5]
	name, ok = table.Classify(FromRaw[Clamp](0.9))
	require.True(t, ok)
	require.Equal(t, Open, name)

	name, ok = table.Classify(FromRaw[Clamp](1.2))
	require.True(t, ok)
	require.Equal(t, Closed, name)

	name, ok = table.Classify(FromRaw[Clamp](2.1))
	require.True(t, ok)
	require.Equal(t, Closed, name)

	hazards := table.Hazards()
	require.Len(t, hazards, 1)
	require.Equal(t, HazardOverlap, hazards[0].Kind)
	require.Equal(t, Open, hazards[0].First)
	require.Contains(t, hazards[0].String(), "OPEN wins")
}

func TestLookup(t *testing.T) {
	table := hoistTable()

	q, ok := table.Lookup(L3)
	require.True(t, ok)
	require.InDelta(t, 33*rotationsPerInch, q.Raw(), 1e-9)

	_, ok = table.Lookup(Open)
	require.False(t, ok)
}

func TestHazardsCleanTable(t *testing.T) {
	require.Empty(t, hoistTable().Hazards())
}

func TestHazardsNonMonotonicAndDuplicate(t *testing.T) {
	table := NewStateTable(
		FromRaw[Hoist](0.1),
		StateEntry[Hoist]{Name: Home, Value: FromRaw[Hoist](0)},
		StateEntry[Hoist]{Name: L1, Value: FromRaw[Hoist](20)},
		StateEntry[Hoist]{Name: L2, Value: FromRaw[Hoist](10)},
		StateEntry[Hoist]{Name: L2, Value: FromRaw[Hoist](30)},
	)

	kinds := map[HazardKind]int{}
	for _, h := range table.Hazards() {
		kinds[h.Kind]++
	}
	require.Equal(t, 1, kinds[HazardDuplicate])
	require.Equal(t, 1, kinds[HazardNonMonotonic])
	require.Zero(t, kinds[HazardOverlap])
}

func TestNamesKeepDeclarationOrder(t *testing.T) {
	require.Equal(t, []StateName{Home, L1, L2, L3, L4}, hoistTable().Names())
}

func TestFormatStateSentinel(t *testing.T) {
	require.Equal(t, "none", FormatState("", false))
	require.Equal(t, "none", FormatState(Home, false))
	require.Equal(t, "HOME", FormatState(Home, true))
}
