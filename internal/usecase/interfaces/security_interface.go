package interfaces

import "vermafarm/internal/domain/entities"

// ITokenIssuer signs and verifies bearer tokens.
type ITokenIssuer interface {
	Issue(u entities.User) (string, error)
	Parse(token string) (entities.Caller, error)
}

// IPasswordHasher hashes and verifies account passwords.
type IPasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
