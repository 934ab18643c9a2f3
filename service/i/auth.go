package i

import (
	"github.com/beka-birhanu/minesweeper-api/identity"
)

// Authenticator registers users and signs them in.
type Authenticator interface {
	// Register creates a user after validating username and password strength.
	Register(username, password string) error

	// SignIn checks the credentials and returns the user with a signed token.
	SignIn(username, password string) (*identity.User, string, error)
}
