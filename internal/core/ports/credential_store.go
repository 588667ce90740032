package ports

// CredentialStore checks a username/password pair against stored hashes.
// Implementations are read-only at runtime; an unknown username reports
// false, never an error.
type CredentialStore interface {
	Validate(username, password string) bool
}
