package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a user-owned label attached to recipes.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

// Ingredient is a user-owned recipe component.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

type Recipe struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	TimeMinutes int            `gorm:"not null" json:"time_minutes"`
	Price       float64        `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string         `gorm:"size:255" json:"link"`
	ImageURL    string         `gorm:"size:255" json:"image"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Tags        []Tag          `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient   `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}
