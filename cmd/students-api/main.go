// students-api is the development backend for the students client. It
// serves both endpoint families from one SQLite file:
//
//	GET    /api/all                  flat eleve list
//	POST   /api/save                 insert or replace an eleve
//	DELETE /api/delete/{id}
//	POST   /api/students             paged student resource
//	GET    /api/students?page=&size=
//	GET    /api/students/{id}
//	PUT    /api/students/{id}
//	DELETE /api/students/{id}
//
// Run it with:
//
//	go run ./cmd/students-api --config=config/local.yaml
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-manager/internal/config"
	"github.com/aanand-mishra/student-manager/internal/http/handlers/eleve"
	"github.com/aanand-mishra/student-manager/internal/http/handlers/student"
	"github.com/aanand-mishra/student-manager/internal/http/middleware"
	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	db, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: middleware.RequestLogger(log)(middleware.CORS(newRouter(db))),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server")

	// In-flight requests get five seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

func newRouter(s storage.Storage) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /api/all", eleve.GetAll(s))
	router.HandleFunc("POST /api/save", eleve.Save(s))
	router.HandleFunc("DELETE /api/delete/{id}", eleve.Delete(s))

	router.HandleFunc("POST /api/students", student.New(s))
	router.HandleFunc("GET /api/students", student.GetList(s))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(s))
	router.HandleFunc("PUT /api/students/{id}", student.Update(s))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(s))

	return router
}

// setupLogger picks text output for dev and JSON elsewhere.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
