package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/ldelaney/rolodex/server/auth"
	"github.com/ldelaney/rolodex/server/auth/key"
	"github.com/ldelaney/rolodex/server/logger"
	"github.com/ldelaney/rolodex/server/models"
	"github.com/ldelaney/rolodex/server/session"
	"github.com/ldelaney/rolodex/shared"
	"github.com/spf13/viper"
)

var (
	logg     = logger.NewLogger()
	validate = validator.New()

	sessionManager *session.Manager
	authenticator  auth.Authenticator
	authKeyPair    *key.KeyPair
	renderer       Renderer
)

// Start boots the contact-book server: config validation, db migration,
// route table, CSRF & logging wrappers, then serves until interrupted.
func Start(config *viper.Viper, devMode bool) {
	serverConfig := shared.ServerConfig{}
	fatalOnError(config.Unmarshal(&serverConfig))
	fatalOnError(validate.Struct(serverConfig))

	keyPair, err := key.NewKeyPairFromRSAPrivateKeyPem(serverConfig.Rolodex.PrivateKeyPem)
	fatalOnError(err)

	fatalOnError(models.AutoMigrate(serverConfig.Sqlite.PassPhrase, configDirectory(devMode)))

	router := NewRouter(
		session.NewManager(keyPair, []byte(serverConfig.Rolodex.Session.CookieSecret)),
		PasswordAuthenticator{},
		keyPair,
		NewJSONRenderer(),
	)

	// Every state-mutating route sits behind the CSRF check.
	csrfProtect := csrf.Protect(
		[]byte(serverConfig.Rolodex.Session.CsrfSecret),
		csrf.Secure(!devMode),
		csrf.Path("/"),
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%v", serverConfig.Rolodex.Listener.Port),
		Handler: loggingMiddleware(csrfProtect(router)),
	}

	go serve(httpServer)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	cleanup(httpServer)
}

// NewRouter wires the route table. Required checks for a route - allowed
// methods, login, ownership scoping - are declared here, not in handlers.
func NewRouter(
	manager *session.Manager,
	authnt auth.Authenticator,
	keyPair *key.KeyPair,
	rndr Renderer,
) *mux.Router {
	sessionManager = manager
	authenticator = authnt
	authKeyPair = keyPair
	renderer = rndr

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		notFound(rw)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		methodNotAllowed(rw)
	})
	router.Use(currentUserMiddleware)

	router.HandleFunc("/register", register).Methods("GET", "POST")
	router.HandleFunc("/login", logIn).Methods("GET", "POST")
	router.HandleFunc("/logout", logOut).Methods("POST")
	router.HandleFunc("/.well-known/jwks.json", jwks).Methods("GET")

	authRouter := router.NewRoute().Subrouter()
	authRouter.Use(requireLoginMiddleware)
	authRouter.HandleFunc("/dashboard", dashboard).Methods("GET")
	authRouter.HandleFunc("/contacts", contactList).Methods("GET")
	authRouter.HandleFunc("/contacts/add", addContact).Methods("GET", "POST")
	authRouter.HandleFunc("/contacts/{id:[0-9]+}", contactDetail).Methods("GET")
	authRouter.HandleFunc("/contacts/{id:[0-9]+}/edit", editContact).Methods("GET", "POST")
	authRouter.HandleFunc("/contacts/{id:[0-9]+}/delete", deleteContact).Methods("POST")
	authRouter.HandleFunc("/contacts/{id:[0-9]+}/add-phone", addPhone).Methods("GET", "POST")
	authRouter.HandleFunc("/phone/{id:[0-9]+}/edit", editPhone).Methods("GET", "POST")
	authRouter.HandleFunc("/phone/{id:[0-9]+}/delete", deletePhone).Methods("POST")

	return router
}
