package auth

import "context"

// AdminSubject is the subject of every admin token.
const AdminSubject = "admin"

// Authenticator verifies a credential and returns the subject it belongs to.
// The server only has one principal, the administrator, but the interface
// leaves room for other credential kinds.
type Authenticator interface {
	// Authenticate returns the subject for credential, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, credential string) (string, error)

	// ValidateCredential checks a credential before it is hashed or stored.
	ValidateCredential(credential string) error
}
