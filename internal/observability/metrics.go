package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchRequestsTotal — сколько раз запускался подбор по каталогу.
	MatchRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_match_requests_total",
		Help: "Всего запросов подбора по каталогу",
	})

	// PredictionsTotal — выданные оценки цены по стратегиям.
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_predictions_total",
		Help: "Оценки цены по методу (regression/statistical/none)",
	}, []string{"method"})

	// ExactMatchesTotal — запросы, где верхний балл достиг потолка.
	ExactMatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_exact_matches_total",
		Help: "Запросы с точным совпадением по каталогу",
	})
)
