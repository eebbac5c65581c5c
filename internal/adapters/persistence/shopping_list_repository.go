package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner/internal/domain/shared"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// GormShoppingListRepository implements ShoppingListRepository using GORM
type GormShoppingListRepository struct {
	db *gorm.DB
}

// NewGormShoppingListRepository creates a new GORM shopping list repository
func NewGormShoppingListRepository(db *gorm.DB) *GormShoppingListRepository {
	return &GormShoppingListRepository{db: db}
}

// Save stores the snapshot, replacing the lines of an existing one with the same ID
func (r *GormShoppingListRepository) Save(ctx context.Context, snapshot *shopping.Snapshot) error {
	model := r.snapshotToModel(snapshot)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_list_id = ?", model.ID).Delete(&ShoppingListLineModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear shopping list lines: %w", err)
		}
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return fmt.Errorf("failed to save shopping list: %w", err)
		}
		if len(model.Lines) > 0 {
			if err := tx.Create(&model.Lines).Error; err != nil {
				return fmt.Errorf("failed to save shopping list lines: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves a snapshot with its lines in stored order
func (r *GormShoppingListRepository) FindByID(ctx context.Context, id string) (*shopping.Snapshot, error) {
	var model ShoppingListModel
	result := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("shopping list", id)
		}
		return nil, fmt.Errorf("failed to find shopping list: %w", result.Error)
	}

	return r.modelToSnapshot(&model), nil
}

// List retrieves all snapshots, newest first
func (r *GormShoppingListRepository) List(ctx context.Context) ([]*shopping.Snapshot, error) {
	var models []ShoppingListModel
	result := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", result.Error)
	}

	snapshots := make([]*shopping.Snapshot, 0, len(models))
	for i := range models {
		snapshots = append(snapshots, r.modelToSnapshot(&models[i]))
	}
	return snapshots, nil
}

func (r *GormShoppingListRepository) snapshotToModel(snapshot *shopping.Snapshot) *ShoppingListModel {
	model := &ShoppingListModel{
		ID:         snapshot.ID,
		Name:       snapshot.Name,
		Decomposed: snapshot.Decomposed,
		Options:    snapshot.Options.Pack(),
		CreatedAt:  snapshot.CreatedAt,
		Lines:      make([]ShoppingListLineModel, 0, len(snapshot.Lines)),
	}
	for i, line := range snapshot.Lines {
		model.Lines = append(model.Lines, ShoppingListLineModel{
			ShoppingListID: snapshot.ID,
			Position:       i,
			Kind:           line.Kind,
			Name:           line.Name,
			Quality:        line.Quality,
			Count:          line.Count,
		})
	}
	return model
}

func (r *GormShoppingListRepository) modelToSnapshot(model *ShoppingListModel) *shopping.Snapshot {
	snapshot := &shopping.Snapshot{
		ID:         model.ID,
		Name:       model.Name,
		Decomposed: model.Decomposed,
		Options:    shopping.UnpackOptions(model.Options),
		CreatedAt:  model.CreatedAt.UTC(),
		Lines:      make([]shopping.SnapshotLine, 0, len(model.Lines)),
	}
	for _, line := range model.Lines {
		snapshot.Lines = append(snapshot.Lines, shopping.SnapshotLine{
			Kind:    line.Kind,
			Name:    line.Name,
			Quality: line.Quality,
			Count:   line.Count,
		})
	}
	return snapshot
}
