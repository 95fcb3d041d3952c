package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringSet is a JSON array column with set semantics on mutation.
type StringSet []string

// Value implements the driver.Valuer interface
func (a StringSet) Value() (driver.Value, error) {
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
func (a *StringSet) Scan(value interface{}) error {
	return scanJSON(value, a, func() { *a = StringSet{} })
}

// Contains reports membership.
func (a StringSet) Contains(v string) bool {
	for _, s := range a {
		if s == v {
			return true
		}
	}
	return false
}

// Add returns the set with v appended if it was not already a member.
func (a StringSet) Add(v string) StringSet {
	if a.Contains(v) {
		return a
	}
	return append(a, v)
}

// Remove returns the set without v. Removing a non-member is a no-op.
func (a StringSet) Remove(v string) StringSet {
	out := make(StringSet, 0, len(a))
	for _, s := range a {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// UserRecord is the per-user document holding the favorite set and minimal
// profile fields. ID is the authenticated user's id.
type UserRecord struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string    `gorm:"size:255" json:"email"`
	Favorites StringSet `gorm:"type:jsonb;not null;default:'[]'" json:"favorites"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the record collection separate from the accounts table.
func (UserRecord) TableName() string {
	return "user_records"
}
