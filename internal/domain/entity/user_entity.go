package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Email is unique across all rows and immutable after creation; only Age is
// mutable through the API.
//
// Password is stored and returned verbatim. That mirrors the current API
// contract; hashing it (and hiding it from responses) is a pending product
// decision, not something to change quietly here.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
