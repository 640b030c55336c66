package repositories

// SessionRepository persists the client-owned cart identity. It is the
// local-storage counterpart of the storefront: the cart id is the only
// value written in regular operation.
type SessionRepository interface {
	GetCartID() (string, error)
	SetCartID(id string) error
	ClearCartID() error
}
