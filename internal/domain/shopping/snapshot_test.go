package shopping_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

func TestSnapshot_RestoreDistinguishesKinds(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	list := listOf(map[gamedata.Object]float64{s.assembler: 2, s.assemblerItem: 3, s.plateRecipe: 1})
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	// Act
	snapshot := shopping.NewSnapshot("id-1", "main bus", list, shopping.Options{}, false, createdAt)
	restored, err := snapshot.Restore(s.registry)

	// Assert
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 3)
	assert.Equal(t, gamedata.KindGoods, snapshot.Lines[0].Kind)
	if diff := cmp.Diff(byName(list), byName(restored)); diff != "" {
		t.Errorf("Restore() mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, restored.Entries, 3)
	assert.Equal(t, list.Cost, restored.Cost)
}

func TestSnapshot_RestoreUnknownObject(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	snapshot := &shopping.Snapshot{ID: "id-2", Lines: []shopping.SnapshotLine{{Kind: gamedata.KindGoods, Name: "unobtainium", Count: 1}}}

	// Act
	_, err := snapshot.Restore(s.registry)

	// Assert
	var unknown *gamedata.ErrUnknownObject
	assert.True(t, errors.As(err, &unknown))
}
