package model

// Identity is the verified caller identity extracted from an access
// token. It is built once by the JWT middleware and passed to
// handlers through the request context under a single key; the
// workflow never reads role or user id from ambient state.
type Identity struct {
	UserID    uint64
	Email     string
	Role      string
	FirstName string
	LastName  string
}
