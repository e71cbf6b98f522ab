package session

import "context"

// Credentials is the persisted proof of authentication: the bearer token and
// the serialized administrator profile written at login.
type Credentials struct {
	Token       string
	ProfileJSON []byte
}

// CredentialStorage persists credentials across console restarts. Exactly
// one credential set exists per store; Save replaces any previous one.
type CredentialStorage interface {
	Load(ctx context.Context) (Credentials, bool, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
