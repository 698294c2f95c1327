package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/csrf"
	"github.com/ldelaney/rolodex/server/models"
	"github.com/ldelaney/rolodex/utils"
)

// ---------------------------------------------------------------------------------//
// Handler helper functions
// --------------------------------------------------------------------------------//

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(RequestContextKey("currentUser")).(*models.User)
	return user
}

// render attaches any pending one-shot notices & the CSRF token to the
// page data before handing off to the renderer. Forms on the rendered
// page echo the token back so gorilla/csrf accepts their POST.
func render(rw http.ResponseWriter, r *http.Request, status int, page string, data RenderData) {
	if data == nil {
		data = RenderData{}
	}

	if notices := sessionManager.Notices(rw, r); len(notices) > 0 {
		data["notices"] = notices
	}

	if token := csrf.Token(r); token != "" {
		data["csrf_token"] = token
	}

	renderer.Render(rw, status, page, data)
}

// notFound is the single outcome for "doesn't exist" and "not yours" -
// the caller can't tell them apart.
func notFound(rw http.ResponseWriter) {
	renderer.Render(rw, http.StatusNotFound, "not_found", RenderData{"message": "Not found."})
}

func methodNotAllowed(rw http.ResponseWriter) {
	renderer.Render(rw, http.StatusMethodNotAllowed, "method_not_allowed",
		RenderData{"message": "Method not allowed."})
}

func internalError(rw http.ResponseWriter, err error) {
	logg.Error(err)
	renderer.Render(rw, http.StatusInternalServerError, "error",
		RenderData{"message": "Sorry, an application error has occurred."})
}

// ---------------------------------------------------------------------------------//
// Server helper functions
// --------------------------------------------------------------------------------//

func serve(httpServer *http.Server) {
	logg.Infof("Rolodex server is listening on port%v...", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(httpServer *http.Server) {
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Rolodex server shutdown failed: %+v", err)
	}

	logg.Infof("Rolodex server stopped properly")
}

// configDirectory retrieves the directory holding the server's db folder,
// or logs an error message and exits if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'rolodex' folder in home directory for prod
	configFolderName := "rolodex"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
