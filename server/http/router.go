package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	catHnd "stone-price-service/internal/catalog/handler"
	"stone-price-service/internal/catalog/store"
	"stone-price-service/internal/config"
	"stone-price-service/internal/middleware"
	"stone-price-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, st *store.Store) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit -> metrics
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))
	r.Use(middleware.Metrics())

	r.Get("/health", handlers.Health(st))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// основной эндпоинт: подбор по каталогу + оценка цены
	r.Post("/match", catHnd.Match(cfg, st, logger))

	return r
}
