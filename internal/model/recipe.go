package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Difficulty is the closed set of recipe difficulty labels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known labels.
func (d Difficulty) Valid() bool {
	return d.Rank() <= 3
}

// Rank orders difficulties easy(1) < medium(2) < hard(3). Unknown labels rank 4.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 4
	}
}

// Ingredient is a single ingredient line of a recipe.
type Ingredient struct {
	Name     string `json:"name" yaml:"name"`
	Quantity string `json:"quantity" yaml:"quantity"`
}

// Complete reports whether both name and quantity are filled in.
func (i Ingredient) Complete() bool {
	return i.Name != "" && i.Quantity != ""
}

// Step is a single preparation step. Order is 1-based and dense within a recipe.
type Step struct {
	Order       int    `json:"order" yaml:"order"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Complete reports whether the step has a description.
func (s Step) Complete() bool {
	return s.Description != ""
}

// Ingredients is stored as a JSON document column.
type Ingredients []Ingredient

// Value implements the driver.Valuer interface
func (a Ingredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *Ingredients) Scan(value interface{}) error {
	return scanJSON(value, a, func() { *a = Ingredients{} })
}

// Steps is stored as a JSON document column.
type Steps []Step

// Value implements the driver.Valuer interface
func (a Steps) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *Steps) Scan(value interface{}) error {
	return scanJSON(value, a, func() { *a = Steps{} })
}

func scanJSON(value interface{}, dst interface{}, empty func()) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		empty()
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(bytes) == 0 {
		empty()
		return nil
	}
	return json.Unmarshal(bytes, dst)
}

// Recipe is a persisted culinary entry. ID and CreatedAt are assigned by the store.
type Recipe struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id,omitempty" yaml:"-"`
	CreatedAt   time.Time   `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time   `json:"updated_at" yaml:"-"`
	Title       string      `gorm:"size:255;not null" json:"title" yaml:"title"`
	Description string      `gorm:"type:text" json:"description" yaml:"description"`
	ImageURL    string      `gorm:"type:text" json:"image_url" yaml:"image_url"`
	PrepTime    int         `json:"prep_time" yaml:"prep_time"`
	CookTime    int         `json:"cook_time" yaml:"cook_time"`
	Servings    int         `json:"servings" yaml:"servings"`
	Difficulty  Difficulty  `gorm:"size:16" json:"difficulty" yaml:"difficulty"`
	Category    string      `gorm:"size:100;index" json:"category" yaml:"category"`
	Ingredients Ingredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients" yaml:"ingredients"`
	Steps       Steps       `gorm:"type:jsonb;not null;default:'[]'" json:"steps" yaml:"steps"`
	UserID      *string     `gorm:"type:varchar(36);index" json:"user_id,omitempty" yaml:"-"`
}

// BeforeCreate assigns the identifier when the caller did not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// TotalTime is preparation plus cooking time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// Clone returns a deep copy so list edits never alias the source slices.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append(Ingredients{}, r.Ingredients...)
	}
	if r.Steps != nil {
		out.Steps = append(Steps{}, r.Steps...)
	}
	if r.UserID != nil {
		id := *r.UserID
		out.UserID = &id
	}
	return out
}

// ContentColumns are the user-editable columns of a recipe.
var ContentColumns = []string{
	"title", "description", "image_url", "prep_time", "cook_time",
	"servings", "difficulty", "category", "ingredients", "steps",
}

// Merge copies fields of patch onto r. With no columns named, only the
// non-zero fields of patch are copied; otherwise exactly the named columns
// are, zero values included. It mirrors the update semantics of the gorm store.
func (r *Recipe) Merge(patch Recipe, columns ...string) {
	if len(columns) > 0 {
		for _, c := range columns {
			r.setColumn(c, patch)
		}
		return
	}
	if patch.Title != "" {
		r.Title = patch.Title
	}
	if patch.Description != "" {
		r.Description = patch.Description
	}
	if patch.ImageURL != "" {
		r.ImageURL = patch.ImageURL
	}
	if patch.PrepTime != 0 {
		r.PrepTime = patch.PrepTime
	}
	if patch.CookTime != 0 {
		r.CookTime = patch.CookTime
	}
	if patch.Servings != 0 {
		r.Servings = patch.Servings
	}
	if patch.Difficulty != "" {
		r.Difficulty = patch.Difficulty
	}
	if patch.Category != "" {
		r.Category = patch.Category
	}
	if patch.Ingredients != nil {
		r.setColumn("ingredients", patch)
	}
	if patch.Steps != nil {
		r.setColumn("steps", patch)
	}
	if patch.UserID != nil {
		r.setColumn("user_id", patch)
	}
}

func (r *Recipe) setColumn(column string, patch Recipe) {
	switch column {
	case "title":
		r.Title = patch.Title
	case "description":
		r.Description = patch.Description
	case "image_url":
		r.ImageURL = patch.ImageURL
	case "prep_time":
		r.PrepTime = patch.PrepTime
	case "cook_time":
		r.CookTime = patch.CookTime
	case "servings":
		r.Servings = patch.Servings
	case "difficulty":
		r.Difficulty = patch.Difficulty
	case "category":
		r.Category = patch.Category
	case "ingredients":
		r.Ingredients = append(Ingredients{}, patch.Ingredients...)
	case "steps":
		r.Steps = append(Steps{}, patch.Steps...)
	case "user_id":
		r.UserID = nil
		if patch.UserID != nil {
			id := *patch.UserID
			r.UserID = &id
		}
	}
}
