package models

import "time"

// Item is a shareable reviewable entity (a place, a book, ...). The creator
// keeps a reference via UserID but does not exclusively control the item.
//
// Latitude and Longitude are either both set or both nil; the pairing is
// also enforced by a CHECK constraint in the rating_items table.
type Item struct {
	ID          int64
	UserID      int64
	Category    string
	Title       string
	Image       *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	TimeCreated time.Time
	TimeUpdated *time.Time
}

// HasCompleteLocation reports whether the latitude/longitude pair satisfies
// the both-or-neither rule.
func (i *Item) HasCompleteLocation() bool {
	return (i.Latitude == nil) == (i.Longitude == nil)
}
