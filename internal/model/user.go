package model

import "time"

// User represents a registered account.
//
// Users register with a username and password. The password is stored only as
// a bcrypt hash (see auth.PasswordService); PasswordHash is never serialised
// to JSON, which is what the `json:"-"` tag does.
//
// ID FORMAT:
// Internal IDs are xid strings (e.g. "cv37rs3pp9olc6atsptg"). They end up as
// the "sub" claim of the JWT and as owner_id on platforms and contents.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"`
	Email        string    `json:"email"     db:"email"`
	Name         string    `json:"name"      db:"name"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
