package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/gorilla/sessions"
	"github.com/ldelaney/rolodex/server/auth"
	"github.com/ldelaney/rolodex/server/auth/key"
	"github.com/ldelaney/rolodex/server/logger"
	"github.com/ldelaney/rolodex/server/models"
)

var logg = logger.NewLogger()

const (
	sessionCookieName = "rolodex_session"
	flashSessionName  = "rolodex_flash"

	sessionDuration = 24 * time.Hour
)

// Manager owns the two cookies the app uses: a signed session token
// identifying the logged-in user, and a flash cookie holding one-shot
// notices for the next render.
type Manager struct {
	keyPair *key.KeyPair
	flashes *sessions.CookieStore
}

func NewManager(keyPair *key.KeyPair, cookieSecret []byte) *Manager {
	store := sessions.NewCookieStore(cookieSecret)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	return &Manager{keyPair: keyPair, flashes: store}
}

func (manager *Manager) SignIn(rw http.ResponseWriter, identity *auth.Identity) error {
	claims := auth.SessionTokenClaims{
		Username: identity.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   fmt.Sprint(identity.ID),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(sessionDuration).Unix(),
		},
	}

	token, err := auth.EncodeSessionToken(claims, manager.keyPair)
	if err != nil {
		return err
	}

	http.SetCookie(rw, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (manager *Manager) SignOut(rw http.ResponseWriter) {
	http.SetCookie(rw, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser resolves the session cookie to a user record, or nil.
// An expired/garbled token and a deleted account both read as "not logged in".
func (manager *Manager) CurrentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	claims, err := auth.DecodeSessionToken(cookie.Value, manager.keyPair)
	if err != nil {
		return nil
	}

	user, err := models.FindUserBy("id", claims.Subject)
	if err != nil {
		return nil
	}

	return user
}

// AddNotice queues a one-shot notice for the redirect target.
func (manager *Manager) AddNotice(rw http.ResponseWriter, r *http.Request, notice string) {
	flashSession, _ := manager.flashes.Get(r, flashSessionName)
	flashSession.AddFlash(notice)

	if err := flashSession.Save(r, rw); err != nil {
		logg.Errorf("failed to save flash notice: %v", err)
	}
}

// Notices pops every queued notice. Once read they are gone -
// saving the emptied session rewrites the cookie.
func (manager *Manager) Notices(rw http.ResponseWriter, r *http.Request) []string {
	flashSession, _ := manager.flashes.Get(r, flashSessionName)

	raw := flashSession.Flashes()
	if len(raw) > 0 {
		if err := flashSession.Save(r, rw); err != nil {
			logg.Errorf("failed to clear flash notices: %v", err)
		}
	}

	notices := []string{}
	for _, flash := range raw {
		if notice, ok := flash.(string); ok {
			notices = append(notices, notice)
		}
	}

	return notices
}
