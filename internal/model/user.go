package model

// User is a credential record from the users table. The store is the source
// of truth; users are managed by editing the sheet, not through this API.
type User struct {
	Username     string
	PasswordHash string
	Role         string
}
