package domain

import "slices"

type User struct {
	ID        string
	Email     string
	Password  string
	LastName  string
	FirstName string
	Photo     string
	Favorites []string
}

// UserChanges is a partial update to a user record. Nil fields are left
// untouched; a non-nil Favorites replaces the whole list.
type UserChanges struct {
	Email     *string
	Password  *string
	LastName  *string
	FirstName *string
	Photo     *string
	Favorites []string
}

// ToggleFavorite returns the favorites list with itemID added, or removed if
// it was already present.
func ToggleFavorite(favorites []string, itemID string) []string {
	if i := slices.Index(favorites, itemID); i >= 0 {
		return slices.Delete(slices.Clone(favorites), i, i+1)
	}
	return append(slices.Clone(favorites), itemID)
}
