package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"DOIT_BACK-END/internal/config"
	"DOIT_BACK-END/internal/handlers"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/middleware"
	"DOIT_BACK-END/internal/services"
	"DOIT_BACK-END/internal/utils"
)

// Deps carries everything the router needs. Google is nil when OAuth is not configured.
type Deps struct {
	Users  *services.UserService
	Notes  *services.NoteService
	Health *handlers.HealthHandler
	Google *handlers.GoogleAuthHandler
	JWT    *config.JWTConfig
	Log    logging.Logger
}

// NewRouter configures all application routes and wraps them with
// recovery, request logging and the bearer-token gate.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := handlers.NewAuthHandler(d.Users, d.Log)
	userHandler := handlers.NewUserHandler(d.Users, d.Log)
	noteHandler := handlers.NewNoteHandler(d.Notes, d.Log)

	// Health check routes
	mux.HandleFunc("GET /healthz", d.Health.HealthCheck)
	mux.HandleFunc("GET /livez", d.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", d.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	if d.Google != nil {
		mux.HandleFunc("GET /api/auth/google/login", d.Google.GoogleLogin)
		mux.HandleFunc("GET /api/auth/google/callback", d.Google.GoogleCallback)
	}

	// User routes
	mux.HandleFunc("GET /api/users/{id}", userHandler.GetUser)
	mux.HandleFunc("PUT /api/users/{id}", userHandler.UpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", userHandler.DeleteUser)

	// Note routes
	mux.HandleFunc("GET /api/notes", noteHandler.ListNotes)
	mux.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	mux.HandleFunc("GET /api/notes/{id}", noteHandler.GetNote)
	mux.HandleFunc("PUT /api/notes/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.DeleteNote)
	mux.HandleFunc("PATCH /api/notes/{id}/complete", noteHandler.CompleteNote)
	mux.HandleFunc("PATCH /api/notes/{id}/uncomplete", noteHandler.UncompleteNote)

	// Swagger documentation
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var h http.Handler = withErrorBodies(mux)
	h = middleware.AuthMiddleware(h, d.Users, d.JWT, d.Log)
	h = middleware.Recoverer(h, d.Log)
	h = middleware.RequestLogger(h, d.Log)
	return h
}

// withErrorBodies renders the mux's own 404 and 405 replies as the JSON error
// body instead of plain text.
func withErrorBodies(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(&missWriter{ResponseWriter: w}, r)
	})
}

// missWriter swaps the status line for an error body and drops the text the
// mux writes after it. Headers such as Allow are kept.
type missWriter struct {
	http.ResponseWriter
	wrote bool
}

func (m *missWriter) WriteHeader(status int) {
	if m.wrote {
		return
	}
	m.wrote = true
	m.Header().Del("X-Content-Type-Options")
	utils.WriteErrorResponse(m.ResponseWriter, status, http.StatusText(status))
}

func (m *missWriter) Write(b []byte) (int, error) {
	if !m.wrote {
		m.WriteHeader(http.StatusNotFound)
	}
	return len(b), nil
}
