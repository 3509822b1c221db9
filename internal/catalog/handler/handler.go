package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"stone-price-service/internal/catalog/model"
	"stone-price-service/internal/catalog/service"
	"stone-price-service/internal/catalog/store"
	"stone-price-service/internal/catalog/table"
	"stone-price-service/internal/config"
	"stone-price-service/internal/fileio"
	"stone-price-service/internal/middleware"
	"stone-price-service/internal/observability"
)

// сколько верхних строк отдаём в ответе по умолчанию
const defaultLimit = 50

type matchResponse struct {
	Query      model.Query           `json:"query"`
	Total      int                   `json:"total"`
	TopScore   float64               `json:"topScore"`
	MaxScore   float64               `json:"maxScore"`
	Exact      bool                  `json:"exact"`
	Matches    []model.ScoredProduct `json:"matches"`
	Prediction *model.Prediction     `json:"prediction,omitempty"`
}

// Match возвращает http.HandlerFunc для роутера:
// r.Post("/match", catHnd.Match(cfg, st, logger)).
// Датасет берётся из сконфигурированной таблицы либо из приложенного
// файла (multipart-поле "file").
func Match(cfg config.Config, st *store.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if rid := middleware.GetRequestID(r); rid != "" {
			log = logger.With().Str("rid", rid).Logger()
		}
		defer r.Body.Close()

		dataset, errMsg, code := readDataset(r, cfg, st)
		if errMsg != "" {
			http.Error(w, errMsg, code)
			return
		}

		q, bad := queryFromForm(r)
		if bad != "" {
			http.Error(w, bad, http.StatusBadRequest)
			return
		}

		observability.MatchRequestsTotal.Inc()

		scored := service.Score(dataset, q)

		resp := matchResponse{
			Query:    q,
			Total:    len(scored),
			MaxScore: service.MaxScore(),
			Matches:  scored,
		}
		if len(scored) > 0 {
			resp.TopScore = scored[0].PriorityScore
			resp.Exact = scored[0].PriorityScore >= service.MaxScore()
		}
		if limit := atoi(r.FormValue("limit"), defaultLimit); len(resp.Matches) > limit {
			resp.Matches = resp.Matches[:limit]
		}

		// при точном совпадении цена берётся из самой строки,
		// прогноз не нужен
		if resp.Exact {
			observability.ExactMatchesTotal.Inc()
		} else {
			resp.Prediction = service.Estimate(scored, q, model.EstimateOptions{
				Unit:        toUnit(r.FormValue("price_unit")),
				TopK:        atoi(r.FormValue("top_k"), cfg.TopK),
				PriceOffset: cfg.PriceOffset,
			})
			method := "none"
			if resp.Prediction != nil {
				method = resp.Prediction.Method
			}
			observability.PredictionsTotal.WithLabelValues(method).Inc()
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(resp); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("rows", len(dataset)).
			Float64("top_score", resp.TopScore).
			Bool("exact", resp.Exact).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

// readDataset — сконфигурированная таблица или приложенный файл.
// Возвращает (dataset, текст ошибки, http-код).
func readDataset(r *http.Request, cfg config.Config, st *store.Store) ([]model.Product, string, int) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			return nil, "bad multipart form: " + err.Error(), http.StatusBadRequest
		}
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			maps, err := fileio.ReadAnyMaps(file, header.Filename, atoi(r.FormValue("header_row"), 1))
			if err != nil {
				return nil, "failed to read catalogue: " + err.Error(), http.StatusBadRequest
			}
			return table.Products(maps), "", 0
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, "bad form: " + err.Error(), http.StatusBadRequest
	}

	dataset, err := st.Products()
	if err != nil {
		return nil, "catalogue unavailable: " + err.Error(), http.StatusServiceUnavailable
	}
	return dataset, "", 0
}
