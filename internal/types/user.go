package types

import "time"

// CurrentUser is the authenticated identity as seen by the core packages.
type CurrentUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the signed-in account with its activity counts.
type Profile struct {
	CurrentUser
	MemberSince    time.Time `json:"member_since"`
	RecipesCount   int       `json:"recipes_count"`
	FavoritesCount int       `json:"favorites_count"`
}
