package admin

import "time"

// Admin is the back-office identity attached to a session. The password
// hash never leaves this package.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Credential is the stored account row, including the bcrypt hash.
type Credential struct {
	Admin
	PasswordHash string
	CreatedAt    time.Time
}
