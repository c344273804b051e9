package domain

// CartLine is one (user, item) selection in the cart. The backend enforces
// at most one line per (UserID, ItemID); adding an existing item bumps the
// quantity instead of creating a second line.
type CartLine struct {
	ID       string
	UserID   string
	ItemID   string
	Quantity int
}

// FindLineByItem returns the line holding itemID, if any.
func FindLineByItem(lines []CartLine, itemID string) (CartLine, bool) {
	for _, l := range lines {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return CartLine{}, false
}
