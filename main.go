package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealdesk/config"
	"dealdesk/database"
	"dealdesk/logging"
	"dealdesk/site"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogPretty)

	database.SetPath(cfg.DBPath)
	_ = database.GetDB() // force database initialization
	r := initRouter()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logging.Info().Str("addr", cfg.Addr).Msg("server listening")
		if err := http.ListenAndServe(cfg.Addr, r); err != nil {
			logging.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	// Block until a signal is received
	<-signals
	logging.Info().Msg("shutting down gracefully")

	database.CloseDB()
}

func initRouter() *chi.Mux {
	r := chi.NewRouter()

	CORSMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(CORSMiddleware.Handler)
	r.Use(middleware.RealIP)
	r.Use(site.RequestLogger)
	r.Use(httprate.LimitByIP(100, time.Minute)) // shared across all routes
	r.Use(middleware.Recoverer)
	r.Use(site.TryPutUserInContextMiddleware)

	r.Post("/auth/signup", site.UserSignUp)
	r.Post("/auth/signin", site.UserSignIn)
	r.Post("/auth/logout", site.UserLogout)

	r.With(site.AuthProtectedMiddleware).Get("/dashboard", site.Dashboard)

	fileServer := http.FileServer(http.Dir("./assets"))
	r.Handle("/assets/*", http.StripPrefix("/assets", fileServer))

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Route("/review-queue", func(r chi.Router) {
				r.Get("/", site.ReviewQueueList)
				r.Post("/{id}/reject", site.ReviewQueueReject)
				r.Put("/{id}/update", site.ReviewQueueUpdate)
				r.Post("/{id}/approve", site.ReviewQueueApprove)
			})

			r.Route("/card-configs", func(r chi.Router) {
				r.Get("/", site.ListCardConfigs)
				r.Get("/{categoryType}", site.GetCardConfig)
				r.Put("/{categoryType}", site.UpsertCardConfig)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", site.CreateCategory)
				r.Put("/{id}", site.UpdateCategory)
				r.Delete("/{id}", site.DeleteCategory)
			})

			r.Route("/banks", func(r chi.Router) {
				r.Post("/", site.CreateBank)
				r.Put("/{id}", site.UpdateBank)
				r.Delete("/{id}", site.DeleteBank)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Put("/{id}", site.UpdatePost)
				r.Delete("/{id}", site.DeletePost)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Post("/create", site.CreatePost)
			r.Get("/", site.ListPosts)
			r.Get("/{slug}", site.GetPostBySlug)
		})

		r.Get("/categories", site.ListCategories)
		r.Get("/banks", site.ListBanks)

		r.Post("/comments", site.CreateComment)
		r.Get("/comments", site.ListComments)
	})

	return r
}
