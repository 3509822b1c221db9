package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"stone-price-service/internal/catalog/model"
)

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// toFloatPtr — опциональное поле формы: пусто или мусор → nil.
func toFloatPtr(s string) *float64 {
	f := toFloat(s, math.NaN())
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func toUnit(s string) model.PriceUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pc", "piece":
		return model.UnitPiece
	case "m2":
		return model.UnitM2
	case "ton":
		return model.UnitTon
	case "m3", "":
		return model.UnitM3
	default:
		return model.UnitM3
	}
}

// queryFromForm собирает запрос подбора из полей формы.
// Тип камня и высота обязательны — это зона ответственности вызывающего,
// ядро их не валидирует.
func queryFromForm(r *http.Request) (model.Query, string) {
	stone := strings.TrimSpace(r.FormValue("stone_type"))
	if stone == "" {
		return model.Query{}, "stone_type is required"
	}
	height := toFloat(r.FormValue("height"), math.NaN())
	if math.IsNaN(height) || height <= 0 {
		return model.Query{}, "height must be a positive number"
	}
	return model.Query{
		StoneType:  stone,
		Processing: strings.TrimSpace(r.FormValue("processing")),
		Height:     height,
		Width:      toFloatPtr(r.FormValue("width")),
		Length:     toFloatPtr(r.FormValue("length")),
	}, ""
}
