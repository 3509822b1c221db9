package service

import (
	"math"

	"github.com/rs/zerolog/log"

	"stone-price-service/internal/catalog/model"
)

const (
	// минимум чистых строк для построения регрессии
	minRegressionRows = 4

	// DefaultTopK — сколько верхних строк берёт статистический fallback.
	DefaultTopK = 10

	// DefaultPriceOffset — фиксированная калибровочная добавка к выходу
	// регрессии (7*10/0.8). Происхождение числа не задокументировано,
	// переопределяется через конфиг.
	DefaultPriceOffset = 87.5

	maxConfidence = 95
)

func valid(v *float64) bool { return v != nil && !math.IsNaN(*v) }

// Estimate строит оценку цены по верхним TopK строкам отсортированного
// подмножества: дальние кандидаты только шумят в модели. Сначала пробует
// регрессию, при нехватке данных или неудачном фите молча откатывается к
// описательной статистике. Nil — когда в верхушке нет ни одной пригодной
// цены.
func Estimate(scored []model.ScoredProduct, q model.Query, opt model.EstimateOptions) *model.Prediction {
	if opt.TopK <= 0 {
		opt.TopK = DefaultTopK
	}
	if opt.Unit == "" {
		opt.Unit = model.UnitM3
	}

	top := scored
	if len(top) > opt.TopK {
		top = top[:opt.TopK]
	}

	if p := regress(top, q, opt); p != nil {
		return p
	}
	return statistical(top, opt)
}

// regress — МНК price ~ {score, W, L}, либо price ~ score, если запрос
// не задал W/L. Предсказание строится в точке максимального наблюдённого
// балла и габаритов запроса, затем добавляется калибровочный сдвиг.
func regress(scored []model.ScoredProduct, q model.Query, opt model.EstimateOptions) *model.Prediction {
	full := valid(q.Width) && valid(q.Length)

	var feats [][]float64
	var prices []float64
	maxScore := math.Inf(-1)
	for _, sp := range scored {
		price := sp.Price(opt.Unit)
		if !valid(price) {
			continue
		}
		if full {
			if !valid(sp.Width) || !valid(sp.Length) {
				continue
			}
			feats = append(feats, []float64{sp.PriorityScore, *sp.Width, *sp.Length})
		} else {
			feats = append(feats, []float64{sp.PriorityScore})
		}
		prices = append(prices, *price)
		if sp.PriorityScore > maxScore {
			maxScore = sp.PriorityScore
		}
	}
	if len(prices) < minRegressionRows {
		return nil
	}

	coeffs, r2, err := olsFit(feats, prices)
	if err != nil {
		log.Debug().Err(err).Int("rows", len(prices)).Msg("regression fit skipped")
		return nil
	}

	pred := coeffs[0] + coeffs[1]*maxScore
	co := &model.Coefficients{Score: coeffs[1]}
	if full {
		pred += coeffs[2]**q.Width + coeffs[3]**q.Length
		co.Width = coeffs[2]
		co.Length = coeffs[3]
	}
	pred += opt.PriceOffset

	p := summarize(prices, opt.Unit)
	p.Method = "regression"
	p.Predicted = &pred
	p.R2 = &r2
	p.Coeffs = co
	return p
}

// statistical — fallback: среднее/мин/макс по пригодным ценам;
// уверенность растёт на 10 за каждую цену, но не выше 95.
func statistical(scored []model.ScoredProduct, opt model.EstimateOptions) *model.Prediction {
	var prices []float64
	for _, sp := range scored {
		if price := sp.Price(opt.Unit); valid(price) {
			prices = append(prices, *price)
		}
	}
	if len(prices) == 0 {
		return nil
	}

	p := summarize(prices, opt.Unit)
	p.Method = "statistical"
	return p
}

func summarize(prices []float64, unit model.PriceUnit) *model.Prediction {
	sum, lo, hi := 0.0, prices[0], prices[0]
	for _, v := range prices {
		sum += v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return &model.Prediction{
		AvgPrice:    sum / float64(len(prices)),
		MinPrice:    lo,
		MaxPrice:    hi,
		Confidence:  math.Min(maxConfidence, float64(len(prices))*10),
		ValidPrices: len(prices),
		Unit:        unit,
	}
}
