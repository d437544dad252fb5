package ports

// TokenStore holds the single durable piece of client-side state: the bearer
// token, stored under a fixed key. Load reports ok=false when no token is
// stored; Clear is a no-op when none is.
type TokenStore interface {
	Load() (token string, ok bool, err error)
	Save(token string) error
	Clear() error
}
