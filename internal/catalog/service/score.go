package service

import (
	"math"
	"sort"

	"stone-price-service/internal/catalog/model"
)

// Веса факторов. По W/L применяется joint-distance вариант: оценивается
// разброс |W-L| самого кандидата, а не близость к запросу.
const (
	stoneExactPts = 30.0 // точное совпадение нормализованного имени
	stoneBasePts  = 25.0 // то же семейство, другое полное имя
	stoneAnyPts   = 20.0 // любой камень (нижний ярус, не ноль)

	procExactPts = 20.0
	procAnyPts   = 15.0

	heightMaxPts = 15.0
	heightFloor  = 3.0 // дальше 5 см — минимальный балл, никогда не ноль

	lwMaxPts = 12.0
)

// метки соответствия по типу камня
const (
	MatchExact     = "exact"
	MatchSameBase  = "same-base-type"
	MatchDifferent = "different-type"
)

var heightTiers = []struct {
	within float64
	pts    float64
}{
	{0.01, heightMaxPts}, // строгое <, «фактически равны»
	{1.0, 12},
	{2.0, 9},
	{5.0, 6},
}

// MaxScore — теоретический потолок суммы всех факторов (30+20+15+12).
// Сам скорер его не использует; вызывающая сторона сравнивает с ним
// верхний балл, чтобы отличить точное совпадение от приближённого.
func MaxScore() float64 {
	return stoneExactPts + procExactPts + heightMaxPts + lwMaxPts
}

// tri — исход сравнения с допуском: совпало / не совпало / неопределимо.
// Неопределимо (nil/NaN у кандидата) трактуется как «не совпало», без ошибки.
type tri int

const (
	cmpNo tri = iota
	cmpYes
	cmpUnknown
)

func cmpWithin(v *float64, ref, within float64, strict bool) tri {
	if v == nil || math.IsNaN(*v) {
		return cmpUnknown
	}
	d := math.Abs(*v - ref)
	if strict {
		if d < within {
			return cmpYes
		}
		return cmpNo
	}
	if d <= within {
		return cmpYes
	}
	return cmpNo
}

func heightScore(v *float64, ref float64) float64 {
	for i, t := range heightTiers {
		switch cmpWithin(v, ref, t.within, i == 0) {
		case cmpYes:
			return t.pts
		case cmpUnknown:
			return 0 // высота неизвестна — фактор не оценивается
		}
	}
	return heightFloor
}

// lwDistanceScore — убывающая ступенчатая функция от |W-L| кандидата.
// Квадратные (W≈L) изделия получают полный балл, дальше балл тает.
func lwDistanceScore(w, l *float64) float64 {
	if w == nil || l == nil || math.IsNaN(*w) || math.IsNaN(*l) {
		return 0
	}
	d := math.Abs(*l - *w)
	switch {
	case d < 1:
		return lwMaxPts
	case d <= 5:
		return lwMaxPts * 0.95
	case d <= 10:
		return lwMaxPts * 0.85
	case d <= 20:
		return lwMaxPts * 0.7
	case d <= 30:
		return lwMaxPts * 0.55
	case d <= 50:
		return lwMaxPts * 0.4
	case d <= 75:
		return lwMaxPts * 0.25
	case d <= 100:
		return lwMaxPts * 0.15
	default:
		return lwMaxPts * 0.05
	}
}

// Score считает priority score для каждой строки каталога и возвращает
// копии строк, отсортированные по убыванию балла. Сортировка стабильная:
// при равных баллах сохраняется исходный порядок датасета. Входной срез
// не изменяется.
func Score(dataset []model.Product, q model.Query) []model.ScoredProduct {
	inStone := Normalize(q.StoneType)
	inBase := BaseType(q.StoneType)
	inProc := Normalize(q.Processing)

	out := make([]model.ScoredProduct, 0, len(dataset))
	for i, p := range dataset {
		sp := model.ScoredProduct{Product: p, ProductCode: ProductCode(p, i)}

		switch {
		case Normalize(p.StoneType) == inStone:
			sp.PriorityScore += stoneExactPts
			sp.MatchType = MatchExact
		case BaseType(p.StoneType) == inBase:
			sp.PriorityScore += stoneBasePts
			sp.MatchType = MatchSameBase
		default:
			sp.PriorityScore += stoneAnyPts
			sp.MatchType = MatchDifferent
		}

		if Normalize(p.Processing) == inProc {
			sp.PriorityScore += procExactPts
		} else {
			sp.PriorityScore += procAnyPts
		}

		sp.PriorityScore += heightScore(p.Height, q.Height)
		sp.PriorityScore += lwDistanceScore(p.Width, p.Length)

		out = append(out, sp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}
