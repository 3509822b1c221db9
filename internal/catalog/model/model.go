package model

// PriceUnit selects which price column estimation targets.
type PriceUnit string

const (
	UnitPiece PriceUnit = "pc"
	UnitM2    PriceUnit = "m2"
	UnitM3    PriceUnit = "m3"
	UnitTon   PriceUnit = "ton"
)

// Product — одна строка каталога. Nil-поля = значение неизвестно
// (не распарсилось или отсутствует в таблице), никогда не ноль.
type Product struct {
	StoneType   string   `json:"stoneType"`
	Processing  string   `json:"processing"`
	Description string   `json:"description,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"` // local currency
	USDPc       *float64 `json:"usdPc,omitempty"`
	USDM2       *float64 `json:"usdM2,omitempty"`
	USDM3       *float64 `json:"usdM3,omitempty"`
	USDTon      *float64 `json:"usdTon,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Height      *float64 `json:"h,omitempty"` // cm
	Width       *float64 `json:"w,omitempty"`
	Length      *float64 `json:"l,omitempty"`
}

// Price returns the product price in the requested unit (nil = unknown).
func (p Product) Price(u PriceUnit) *float64 {
	switch u {
	case UnitPiece:
		return p.USDPc
	case UnitM2:
		return p.USDM2
	case UnitTon:
		return p.USDTon
	default:
		return p.USDM3
	}
}

// Query — искомые характеристики. Неизменяема в рамках одного прохода.
type Query struct {
	StoneType  string   `json:"stoneType"`
	Processing string   `json:"processing"`
	Height     float64  `json:"height"`
	Width      *float64 `json:"width,omitempty"`
	Length     *float64 `json:"length,omitempty"`
}

// ScoredProduct — строка каталога с приоритетом и служебными метками.
type ScoredProduct struct {
	Product
	PriorityScore float64 `json:"priorityScore"`
	ProductCode   string  `json:"productCode,omitempty"`
	MatchType     string  `json:"matchType,omitempty"` // exact | same-base-type | different-type
}

// Coefficients of the fitted linear model (per-feature price impact).
type Coefficients struct {
	Score  float64 `json:"score"`
	Width  float64 `json:"width,omitempty"`
	Length float64 `json:"length,omitempty"`
}

// Prediction — итог оценки цены по отобранному подмножеству.
type Prediction struct {
	Method      string        `json:"method"` // regression | statistical
	AvgPrice    float64       `json:"avgPrice"`
	MinPrice    float64       `json:"minPrice"`
	MaxPrice    float64       `json:"maxPrice"`
	Predicted   *float64      `json:"predicted,omitempty"` // point estimate for the query's own dimensions
	Confidence  float64       `json:"confidence"`          // capped at 95
	R2          *float64      `json:"r2,omitempty"`
	Coeffs      *Coefficients `json:"coefficients,omitempty"`
	ValidPrices int           `json:"validPrices"`
	Unit        PriceUnit     `json:"unit"`
}

// EstimateOptions управляют стратегией оценки.
type EstimateOptions struct {
	Unit        PriceUnit // target price column
	TopK        int       // rows fed to the statistical fallback
	PriceOffset float64   // fixed recalibration added to regression output
}
