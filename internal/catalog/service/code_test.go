package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stone-price-service/internal/catalog/model"
)

func TestProductCode(t *testing.T) {
	tests := []struct {
		name  string
		p     model.Product
		index int
		want  string
	}{
		{
			"Basic",
			model.Product{StoneType: "GRANITE WHITE", Processing: "FLAMED", Height: fp(8), Width: fp(15), Length: fp(15)},
			7,
			"GRA-FL-81515-007",
		},
		{
			"TruncatesFractions",
			model.Product{StoneType: "BAZAN ĐEN", Processing: "HONED", Height: fp(7.9), Width: fp(10.2), Length: fp(20.8)},
			0,
			"BAZ-HO-71020-000",
		},
		{
			"MissingDimsBecomeZero",
			model.Product{StoneType: "BLUESTONE", Processing: "SAWN"},
			12,
			"BLU-SA-000-012",
		},
		{
			"NonAlphaSkipped",
			model.Product{StoneType: "1A GRANITE", Processing: "x-cut", Height: fp(5), Width: fp(5), Length: fp(5)},
			3,
			"A-X-555-003", // небуквенные символы в префиксе пропускаются
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductCode(tt.p, tt.index))
		})
	}
}

func TestProductCodeDeterministic(t *testing.T) {
	p := model.Product{StoneType: "GRANITE", Processing: "FLAMED", Height: fp(8)}
	assert.Equal(t, ProductCode(p, 5), ProductCode(p, 5))
	assert.NotEqual(t, ProductCode(p, 5), ProductCode(p, 6))
}
