package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// ID and both timestamps are assigned by the store; Email is fixed after creation.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserChanges describes a partial update. A nil field leaves the stored value as is.
type UserChanges struct {
	Name *string
}

// Empty reports whether the change set touches no field.
func (c UserChanges) Empty() bool {
	return c.Name == nil
}
