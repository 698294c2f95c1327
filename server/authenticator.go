package server

import (
	"errors"

	"github.com/ldelaney/rolodex/server/auth"
	"github.com/ldelaney/rolodex/server/models"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers both unknown usernames and wrong
// passwords, so the login form can't be used to probe for accounts.
var ErrInvalidCredentials = errors.New("invalid username or password")

// PasswordAuthenticator checks submitted credentials against the
// bcrypt hashes in the users table. It is the default auth.Authenticator.
type PasswordAuthenticator struct{}

func (PasswordAuthenticator) Authenticate(username, password string) (*auth.Identity, error) {
	user, err := models.FindUserWithPasswordHash(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &auth.Identity{ID: user.ID, Username: user.Username}, nil
}
