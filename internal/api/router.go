package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/slidedeckhq/slidedeck-be/internal/api/handlers"
	"github.com/slidedeckhq/slidedeck-be/internal/auth"
	"github.com/slidedeckhq/slidedeck-be/internal/imagesearch"
	"github.com/slidedeckhq/slidedeck-be/internal/services"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Users         services.UserServiceProvider
	Presentations services.PresentationServiceProvider
	Uploads       services.UploadServiceProvider
	Generate      services.GenerateServiceProvider
	Export        services.ExportServiceProvider
	ImageSearch   *imagesearch.Client
	CORSOrigin    string
	MaxBodyBytes  int64
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(bodyLimit(deps.MaxBodyBytes))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(deps.Users)
	presHandler := handlers.NewPresentationHandler(deps.Presentations)
	uploadHandler := handlers.NewUploadHandler(deps.Uploads)
	generateHandler := handlers.NewGenerateHandler(deps.Generate)
	exportHandler := handlers.NewExportHandler(deps.Export)
	searchHandler := handlers.NewImageSearchHandler(deps.ImageSearch)

	// Public routes
	r.Get("/health", handlers.Health)
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Get("/uploads/{filename}", uploadHandler.Serve)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware())
		r.Use(httprate.Limit(
			120,
			1*time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		))

		r.Route("/presentations", func(r chi.Router) {
			r.Get("/", presHandler.List)
			r.Post("/", presHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", presHandler.Get)
				r.Put("/", presHandler.Update)
				r.Delete("/", presHandler.Delete)
				r.Get("/export", exportHandler.Export)
				r.Route("/slides", func(r chi.Router) {
					r.Post("/", presHandler.CreateSlide)
					r.Post("/reorder", presHandler.Reorder)
					r.Put("/{sid}", presHandler.UpdateSlide)
					r.Delete("/{sid}", presHandler.DeleteSlide)
					r.Post("/{sid}/ai-generate", generateHandler.GenerateSlide)
				})
			})
		})

		r.Post("/generate", generateHandler.Generate)
		r.Post("/upload-document", uploadHandler.Document)
		r.Post("/upload-image", uploadHandler.Image)
		r.Get("/images/search", searchHandler.Search)
	})

	return r
}

// bodyLimit caps request body size; oversized uploads fail on read rather
// than buffering.
func bodyLimit(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, max)
			next.ServeHTTP(w, r)
		})
	}
}
