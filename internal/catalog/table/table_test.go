package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(h map[string]string) map[string]string { return h }

func TestProductsVietnameseHeaders(t *testing.T) {
	maps := []map[string]string{
		row(map[string]string{
			"LOẠI ĐÁ":        "GRANITE WHITE",
			"CÁCH GIA CÔNG":  "FLAMED",
			"Mô tả Sản Phẩm": "đá lát sân vườn",
			"Đơn giá":        "1,200,000",
			"USD/PC":         "5.5",
			"USD/M2":         "42.0",
			"USD/M3":         "86.4",
			"USD/TON":        "",
			"Year":           "2023",
			"H":              "8",
			"W":              "15",
			"L":              "15",
		}),
	}
	got := Products(maps)
	require.Len(t, got, 1)
	p := got[0]
	assert.Equal(t, "GRANITE WHITE", p.StoneType)
	assert.Equal(t, "FLAMED", p.Processing)
	assert.Equal(t, "đá lát sân vườn", p.Description)
	require.NotNil(t, p.UnitPrice)
	assert.InDelta(t, 1200000, *p.UnitPrice, 1e-9)
	require.NotNil(t, p.USDM3)
	assert.InDelta(t, 86.4, *p.USDM3, 1e-9)
	assert.Nil(t, p.USDTon) // пустая ячейка — неизвестно, не ноль
	require.NotNil(t, p.Year)
	assert.Equal(t, 2023, *p.Year)
	require.NotNil(t, p.Height)
	assert.Equal(t, 8.0, *p.Height)
}

func TestProductsSnakeCaseAliases(t *testing.T) {
	// синхронизатор пишет snake_case заголовки
	maps := []map[string]string{
		row(map[string]string{
			"loai_da":  "BAZAN ĐEN",
			"gia_cong": "HONED",
			"usd_m2":   "31.5",
			"H":        "5",
			"W":        "x", // мусор в числе — nil, не ошибка
			"L":        "",
		}),
	}
	got := Products(maps)
	require.Len(t, got, 1)
	assert.Equal(t, "BAZAN ĐEN", got[0].StoneType)
	require.NotNil(t, got[0].USDM2)
	assert.InDelta(t, 31.5, *got[0].USDM2, 1e-9)
	assert.Nil(t, got[0].Width)
	assert.Nil(t, got[0].Length)
}

func TestProductsSkipsBlankAndHeaderRows(t *testing.T) {
	maps := []map[string]string{
		row(map[string]string{"loai_da": "LOẠI ĐÁ", "gia_cong": "CÁCH GIA CÔNG"}), // повторная шапка
		row(map[string]string{"loai_da": "", "gia_cong": "FLAMED"}),               // без типа камня
		row(map[string]string{"loai_da": "GRANITE", "gia_cong": "FLAMED"}),
	}
	got := Products(maps)
	require.Len(t, got, 1)
	assert.Equal(t, "GRANITE", got[0].StoneType)
}

func TestProductsEmpty(t *testing.T) {
	assert.Empty(t, Products(nil))
	assert.Empty(t, Products([]map[string]string{}))
}

func TestResolveKeyExactAndNormalized(t *testing.T) {
	rec := map[string]string{"USD/M2": "1", "Năm": "2", " h ": "3"}
	assert.Equal(t, "USD/M2", resolveKey(rec, "USD/M2|usd_m2"))
	// нормализованное совпадение: " h " == "H" после чистки
	assert.Equal(t, " h ", resolveKey(rec, "H"))
	// однобуквенные ключи не ловятся по contains в чужих заголовках
	assert.Equal(t, "", resolveKey(map[string]string{"CÁCH GIA CÔNG": ""}, "H"))
}

func TestResolveKeyFuzzy(t *testing.T) {
	// опечатка-транспозиция в заголовке — подбор через схожесть
	rec := map[string]string{"usd_m3": "", "gia cnog": ""}
	assert.Equal(t, "gia cnog", resolveKey(rec, "CÁCH GIA CÔNG|gia_cong"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 0.0, similarity("abc", ""))
	assert.InDelta(t, 1.0, similarity("gia cong", "gia cong"), 1e-9)
	// транспозиция соседних символов — одна правка
	assert.InDelta(t, 1-1.0/8, similarity("gia cnog", "gia cong"), 1e-9)
}
