package models

// Rating is one user's opinion of one item. At most one row exists per
// (ItemID, UserID) pair, enforced by a unique constraint.
type Rating struct {
	ID          int64
	ItemID      int64
	UserID      int64
	Value       int
	Description *string
}

// RatingWithTitle annotates a rating with its item's title, as returned by
// the ratings listing join.
type RatingWithTitle struct {
	Rating
	ItemTitle string
}
