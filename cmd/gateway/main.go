package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/estudia-app/estudia-backend/internal/api/http"
	"github.com/estudia-app/estudia-backend/internal/auth"
	authmw "github.com/estudia-app/estudia-backend/internal/auth/middleware"
	"github.com/estudia-app/estudia-backend/internal/config"
	"github.com/estudia-app/estudia-backend/internal/db"
	"github.com/estudia-app/estudia-backend/internal/entity"
	"github.com/estudia-app/estudia-backend/internal/ingest"
	"github.com/estudia-app/estudia-backend/internal/kv"
	"github.com/estudia-app/estudia-backend/internal/logging"
	"github.com/estudia-app/estudia-backend/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	logger, err := logging.New(string(cfg.Mode))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// --- KV substrate ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var substrate kv.Store
	switch cfg.StoreDriver {
	case "memory":
		substrate = kv.NewMemory()
	case "redis":
		rs, err := kv.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			logger.Fatal("redis open failed", "err", err)
		}
		defer rs.Close()
		substrate = rs
	case "sqlite", "postgres":
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			logger.Fatal("db open failed", "err", err)
		}
		substrate = kv.NewSQLStore(dbh)
	default:
		logger.Fatal("unknown store driver", "driver", cfg.StoreDriver)
	}

	store := entity.NewStore(substrate)
	pipeline := ingest.New(nil) // built-in compact expander

	arch, err := storage.NewFSArchive(cfg.ArchiveBasePath)
	if err != nil {
		logger.Fatal("archive store", "err", err)
	}

	authSvc := authmw.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/auth/guest", auth.GuestLoginHandler(authSvc, store))
	r.Post("/api/auth/admin/login", auth.AdminLoginHandler(authSvc, cfg))

	// Protected API
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.Post("/api/quizzes/validate", api.ValidateQuizHandler())
		pr.Post("/api/quizzes/import", api.ImportQuizHandler(pipeline, store, arch, logger))

		pr.Route("/api/entities/{collection}", func(er chi.Router) {
			er.Get("/", api.ListEntitiesHandler(store))
			er.Post("/", api.CreateEntityHandler(store))
			er.Get("/{id}", api.GetEntityHandler(store))
			er.Patch("/{id}", api.UpdateEntityHandler(store))
			er.Delete("/{id}", api.DeleteEntityHandler(store))
		})

		pr.Group(func(ar chi.Router) {
			ar.Use(authmw.RequireRole("admin"))
			ar.Post("/api/admin/structure/generate", api.GenerateStructureHandler(store, logger))
			ar.Post("/api/admin/quizzes/dedupe", api.DedupeQuizzesHandler(store, logger))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	logger.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "store", cfg.StoreDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
