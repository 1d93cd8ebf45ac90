package lattice_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tightbind/lattice"
)

func nan() float64 { return math.NaN() }

func twoStates(t *testing.T) (*lattice.UnitCell, lattice.ID, lattice.ID) {
	t.Helper()
	c := lattice.NewUnitCell("pair")
	require.NoError(t, c.SetDimensionality(1))
	site, _ := c.AddSite("A", [3]float64{})
	a, _ := c.AddState(site, "a")
	b, _ := c.AddState(site, "b")

	return c, a, b
}

func TestSetHopping_ReplacesSameDisplacement(t *testing.T) {
	c, a, b := twoStates(t)
	require.NoError(t, c.SetHopping(a, b, lattice.Displacement{1, 0, 0}, 1))
	require.NoError(t, c.SetHopping(a, b, lattice.Displacement{1, 0, 0}, 2))
	require.NoError(t, c.SetHopping(a, b, lattice.Displacement{}, 3))
	assert.Equal(t, []lattice.Hopping{
		{Disp: lattice.Displacement{1, 0, 0}, Amplitude: 2},
		{Disp: lattice.Displacement{}, Amplitude: 3},
	}, c.Hoppings(a, b))
	assert.Empty(t, c.Hoppings(b, a))
}

func TestAppendHopping_KeepsDuplicates(t *testing.T) {
	c, a, b := twoStates(t)
	require.NoError(t, c.AppendHopping(a, b, lattice.Displacement{}, 1))
	require.NoError(t, c.AppendHopping(a, b, lattice.Displacement{}, 1))
	assert.Len(t, c.Hoppings(a, b), 2)
}

func TestHopping_Errors(t *testing.T) {
	c, a, _ := twoStates(t)
	ghost := lattice.NewID()
	assert.ErrorIs(t, c.SetHopping(a, ghost, lattice.Displacement{}, 1), lattice.ErrStateNotFound)
	assert.ErrorIs(t, c.AppendHopping(ghost, a, lattice.Displacement{}, 1), lattice.ErrStateNotFound)
	assert.ErrorIs(t, c.SetHopping(a, a, lattice.Displacement{}, complex(nan(), 0)), lattice.ErrNonFinite)
	assert.ErrorIs(t, c.SetHoppingPair(a, a, lattice.Displacement{}, 1i), lattice.ErrOnsiteNotReal)
	assert.ErrorIs(t, c.RemoveHopping(a, a, lattice.Displacement{}), lattice.ErrHoppingNotFound)
}

func TestRemoveHopping_DropsEmptyKey(t *testing.T) {
	c, a, b := twoStates(t)
	require.NoError(t, c.SetHopping(a, b, lattice.Displacement{}, 1))
	require.NoError(t, c.RemoveHopping(a, b, lattice.Displacement{}))
	assert.Empty(t, c.HoppingKeys())
}

func TestClearHoppings(t *testing.T) {
	c, a, b := twoStates(t)
	require.NoError(t, c.SetHoppingPair(a, b, lattice.Displacement{1, 0, 0}, 1))
	c.ClearHoppings(a, b)
	assert.Empty(t, c.Hoppings(a, b))
	assert.Len(t, c.Hoppings(b, a), 1)
	c.ClearHoppings(lattice.NewID(), a) // no-op
}

func TestHoppingTable_IsDetached(t *testing.T) {
	c, a, b := twoStates(t)
	require.NoError(t, c.SetHopping(a, b, lattice.Displacement{}, 1))
	table := c.HoppingTable()
	table[lattice.HoppingKey{Dst: a, Src: b}][0].Amplitude = 99
	assert.Equal(t, complex128(1), c.Hoppings(a, b)[0].Amplitude)
}

func TestIsHermitian(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		c, _, _ := twoStates(t)
		assert.True(t, c.IsHermitian())
	})
	t.Run("pair", func(t *testing.T) {
		c, a, b := twoStates(t)
		require.NoError(t, c.SetHoppingPair(a, b, lattice.Displacement{1, 0, 0}, 0.3+0.7i))
		require.NoError(t, c.SetHoppingPair(a, a, lattice.Displacement{1, 0, 0}, -1))
		require.NoError(t, c.SetHoppingPair(b, b, lattice.Displacement{}, 2))
		assert.True(t, c.IsHermitian())
		assert.NoError(t, c.CheckHermitian())
	})
	t.Run("missing counterpart", func(t *testing.T) {
		c, a, b := twoStates(t)
		require.NoError(t, c.SetHopping(a, b, lattice.Displacement{1, 0, 0}, 1))
		assert.False(t, c.IsHermitian())
		err := c.CheckHermitian()
		assert.ErrorIs(t, err, lattice.ErrNotHermitian)
		var ce *lattice.ConsistencyError
		require.True(t, errors.As(err, &ce))
		assert.ElementsMatch(t, []lattice.ID{a, b}, []lattice.ID{ce.Dst, ce.Src})
	})
	t.Run("wrong displacement sign", func(t *testing.T) {
		c, a, b := twoStates(t)
		require.NoError(t, c.SetHopping(a, b, lattice.Displacement{1, 0, 0}, 1))
		require.NoError(t, c.SetHopping(b, a, lattice.Displacement{1, 0, 0}, 1))
		assert.False(t, c.IsHermitian())
	})
	t.Run("amplitude not conjugated", func(t *testing.T) {
		c, a, b := twoStates(t)
		require.NoError(t, c.SetHopping(a, b, lattice.Displacement{}, 1i))
		require.NoError(t, c.SetHopping(b, a, lattice.Displacement{}, 1i))
		assert.False(t, c.IsHermitian())
	})
	t.Run("within tolerance", func(t *testing.T) {
		c, a, b := twoStates(t)
		require.NoError(t, c.SetHopping(a, b, lattice.Displacement{}, 1))
		require.NoError(t, c.SetHopping(b, a, lattice.Displacement{}, 1+1e-14))
		assert.True(t, c.IsHermitian())
	})
	t.Run("multiset counts", func(t *testing.T) {
		c, a, b := twoStates(t)
		require.NoError(t, c.AppendHopping(a, b, lattice.Displacement{}, 1))
		require.NoError(t, c.AppendHopping(a, b, lattice.Displacement{}, 1))
		require.NoError(t, c.AppendHopping(b, a, lattice.Displacement{}, 1))
		assert.False(t, c.IsHermitian())
		require.NoError(t, c.AppendHopping(b, a, lattice.Displacement{}, 1))
		assert.True(t, c.IsHermitian())
	})
	t.Run("complex onsite", func(t *testing.T) {
		c, a, _ := twoStates(t)
		require.NoError(t, c.SetHopping(a, a, lattice.Displacement{}, 1+1i))
		assert.False(t, c.IsHermitian())
	})
}

func TestSnapshot_IsDetached(t *testing.T) {
	c, a, b := twoStates(t)
	require.NoError(t, c.SetHoppingPair(a, b, lattice.Displacement{1, 0, 0}, 1))
	snap := c.Snapshot()
	assert.Equal(t, c.ID(), snap.CellID)
	assert.Equal(t, c.Revision(), snap.Revision)
	assert.Len(t, snap.States, 2)
	assert.True(t, snap.IsHermitian())

	require.NoError(t, c.RemoveState(b))
	assert.Len(t, snap.Hoppings, 2)
	assert.Less(t, snap.Revision, c.Revision())
	assert.Equal(t, 1, snap.PeriodicCount())
}
