package models

type User struct {
	ID       int64
	Username string
	// Password holds the encoded hash, never the plain text.
	Password string
}
