package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner/internal/domain/shared"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
	"github.com/andrescamacho/factory-planner/test/helpers"
)

func newSnapshot(id string, createdAt time.Time, lines ...shopping.SnapshotLine) *shopping.Snapshot {
	return &shopping.Snapshot{
		ID:        id,
		Name:      "list " + id,
		Options:   shopping.Options{Display: shopping.DisplayBuilt},
		CreatedAt: createdAt,
		Lines:     lines,
	}
}

func TestShoppingListRepository_SaveAndFind(t *testing.T) {
	// Arrange
	repo := persistence.NewGormShoppingListRepository(helpers.NewTestDB(t))
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := newSnapshot("a1", createdAt,
		shopping.SnapshotLine{Kind: "machine", Name: "assembler", Quality: "normal", Count: 3},
		shopping.SnapshotLine{Kind: "goods", Name: "speed-module", Quality: "rare", Count: 6},
	)
	snapshot.Decomposed = true

	// Act
	require.NoError(t, repo.Save(context.Background(), snapshot))
	found, err := repo.FindByID(context.Background(), "a1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, snapshot, found)
}

func TestShoppingListRepository_SaveReplacesLines(t *testing.T) {
	// Arrange
	repo := persistence.NewGormShoppingListRepository(helpers.NewTestDB(t))
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(context.Background(), newSnapshot("a1", createdAt,
		shopping.SnapshotLine{Kind: "goods", Name: "iron-plate", Quality: "normal", Count: 10},
		shopping.SnapshotLine{Kind: "goods", Name: "copper-plate", Quality: "normal", Count: 5},
	)))

	// Act
	require.NoError(t, repo.Save(context.Background(), newSnapshot("a1", createdAt,
		shopping.SnapshotLine{Kind: "goods", Name: "iron-ore", Quality: "normal", Count: 20},
	)))
	found, err := repo.FindByID(context.Background(), "a1")

	// Assert
	require.NoError(t, err)
	require.Len(t, found.Lines, 1)
	assert.Equal(t, "iron-ore", found.Lines[0].Name)
}

func TestShoppingListRepository_FindMissing(t *testing.T) {
	repo := persistence.NewGormShoppingListRepository(helpers.NewTestDB(t))

	_, err := repo.FindByID(context.Background(), "nope")

	var notFound *shared.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "nope", notFound.ID)
}

func TestShoppingListRepository_ListNewestFirst(t *testing.T) {
	// Arrange
	repo := persistence.NewGormShoppingListRepository(helpers.NewTestDB(t))
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(context.Background(), newSnapshot("old", base)))
	require.NoError(t, repo.Save(context.Background(), newSnapshot("new", base.Add(time.Hour),
		shopping.SnapshotLine{Kind: "goods", Name: "gear", Quality: "normal", Count: 1},
	)))

	// Act
	snapshots, err := repo.List(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "new", snapshots[0].ID)
	assert.Len(t, snapshots[0].Lines, 1)
	assert.Equal(t, "old", snapshots[1].ID)
	assert.Empty(t, snapshots[1].Lines)
}
