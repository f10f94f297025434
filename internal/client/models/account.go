package models

import "time"

// Account is a row of the local auth provider's users table.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
