package handlers

import (
	"encoding/json"
	"net/http"

	"stone-price-service/internal/catalog/store"
)

type healthResponse struct {
	Status  string     `json:"status"`
	Dataset store.Info `json:"dataset"`
}

// Health — живость сервиса плюс сводка по загруженному каталогу.
func Health(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "ok",
			Dataset: st.Info(),
		})
	}
}
