package email

import "time"

// Alias is a persisted email-address variant owned by a user. FirstName and
// LastName are only populated by joined reads.
type Alias struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Variant   string    `json:"variant"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
}

// Record is the flat, not-yet-persisted shape the batch writer consumes.
type Record struct {
	UserID  int64  `json:"userId"`
	Variant string `json:"variant"`
	Address string `json:"address"`
}
