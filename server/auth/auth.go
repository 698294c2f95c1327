package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt"
	"github.com/ldelaney/rolodex/server/auth/key"
	"golang.org/x/crypto/bcrypt"
)

// Identity is what the rest of the server knows about a logged-in user.
type Identity struct {
	ID       uint
	Username string
}

// Authenticator is the seam between the request handlers and the
// credential store, so tests can swap in a stub.
type Authenticator interface {
	Authenticate(username, password string) (*Identity, error)
}

type SessionTokenClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func EncodeSessionToken(claims SessionTokenClaims, keyPair *key.KeyPair) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod("RS256"), claims)

	tokenString, err := token.SignedString(keyPair.PrivateKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func DecodeSessionToken(tokenString string, keyPair *key.KeyPair) (*SessionTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return keyPair.PublicKey, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %v", err)
	}

	tokenClaims, ok := token.Claims.(*SessionTokenClaims)
	if !ok {
		return nil, fmt.Errorf("unable to assert token.Claims to SessionTokenClaims")
	}

	return tokenClaims, nil
}
