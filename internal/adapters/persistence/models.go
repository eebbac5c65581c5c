package persistence

import (
	"time"
)

// settingsRowID is the primary key of the single settings row
const settingsRowID = 1

// SettingsModel represents the production_settings table (single row)
type SettingsModel struct {
	ID                   int       `gorm:"column:id;primaryKey"`
	MiningProductivity   float64   `gorm:"column:mining_productivity;not null;default:0"`
	ResearchProductivity float64   `gorm:"column:research_productivity;not null;default:0"`
	TechnologyLevels     string    `gorm:"column:technology_levels;type:text"` // JSON object as text
	ReactorSizeX         float64   `gorm:"column:reactor_size_x;not null;default:2"`
	ReactorSizeY         float64   `gorm:"column:reactor_size_y;not null;default:2"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (SettingsModel) TableName() string {
	return "production_settings"
}

// PreferencesModel represents the preferences table (single row)
type PreferencesModel struct {
	ID        int       `gorm:"column:id;primaryKey"`
	Shopping  int       `gorm:"column:shopping;not null;default:0"` // packed shopping.Options
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PreferencesModel) TableName() string {
	return "preferences"
}

// ShoppingListModel represents the shopping_lists table
type ShoppingListModel struct {
	ID         string                  `gorm:"column:id;primaryKey;not null"`
	Name       string                  `gorm:"column:name"`
	Decomposed bool                    `gorm:"column:decomposed;not null;default:false"`
	Options    int                     `gorm:"column:options;not null;default:0"` // packed shopping.Options
	CreatedAt  time.Time               `gorm:"column:created_at;not null"`
	Lines      []ShoppingListLineModel `gorm:"foreignKey:ShoppingListID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

// ShoppingListLineModel represents the shopping_list_lines table
type ShoppingListLineModel struct {
	ID             int     `gorm:"column:id;primaryKey;autoIncrement"`
	ShoppingListID string  `gorm:"column:shopping_list_id;not null;index"`
	Position       int     `gorm:"column:position;not null"`
	Kind           string  `gorm:"column:kind;not null"`
	Name           string  `gorm:"column:name;not null"`
	Quality        string  `gorm:"column:quality;not null"`
	Count          float64 `gorm:"column:count;not null"`
}

func (ShoppingListLineModel) TableName() string {
	return "shopping_list_lines"
}
