// internal/wire/wire.go
package wire

import (
	"net/http"

	"salon-booking/internal/adaptor"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/queue"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, redisClient *redis.Client, publisher *queue.Publisher, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, redisClient, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the chi router.
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wirePublic(r, handler.Public)
	wireStaff(r, handler.Appointment, handler.Availability, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
