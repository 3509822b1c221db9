package service

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var errDegenerate = errors.New("regress: degenerate input")

// olsFit — обычный МНК с константой: y ~ 1 + features.
// Возвращает коэффициенты [intercept, f1..fk] и R². Вырожденная матрица
// или нулевая дисперсия y — ошибка, вызывающая сторона уходит в fallback.
func olsFit(features [][]float64, y []float64) ([]float64, float64, error) {
	n := len(y)
	if n == 0 || len(features) != n {
		return nil, 0, errDegenerate
	}
	k := len(features[0])

	x := mat.NewDense(n, k+1, nil)
	for i, row := range features {
		x.Set(i, 0, 1)
		for j, v := range row {
			x.Set(i, j+1, v)
		}
	}
	yv := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yv); err != nil {
		return nil, 0, err
	}

	coeffs := make([]float64, k+1)
	for i := range coeffs {
		v := beta.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, 0, errDegenerate
		}
		coeffs[i] = v
	}

	// R² = 1 - SSres/SStot
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)

	var ssRes, ssTot float64
	for i, row := range features {
		pred := coeffs[0]
		for j, v := range row {
			pred += coeffs[j+1] * v
		}
		ssRes += (y[i] - pred) * (y[i] - pred)
		ssTot += (y[i] - mean) * (y[i] - mean)
	}
	if ssTot == 0 {
		return nil, 0, errDegenerate
	}
	return coeffs, 1 - ssRes/ssTot, nil
}
