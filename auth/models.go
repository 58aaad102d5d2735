package auth

import "time"

// User represents a registered account. The password hash never leaves
// the server; json "-" keeps it out of every response.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Token is an opaque bearer credential persisted in the tokens table.
// Key is a 40-character hex string from a CSPRNG; possession of the key
// alone grants the mapped identity.
type Token struct {
	Key       string    `json:"key"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the result of a successful token authentication: the
// resolved user together with the token that named it.
type Identity struct {
	User  User
	Token Token
}
