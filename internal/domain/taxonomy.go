package domain

import "time"

// Category is a coarse tag a work segment is filed under.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activity is a fine-grained tag a work segment is filed under,
// independent of Category.
type Activity struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
