package model

// User represents an application user record as stored in the `user` table.
// The PasswordHash field holds the bcrypt digest and must never be exposed
// in API responses; handlers define their own response types with the
// appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
type User struct {
	ID           uint64 // user.id_user
	Username     string // user.username
	PasswordHash string // user.password
}
