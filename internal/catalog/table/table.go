package table

import (
	"regexp"
	"strings"

	"stone-price-service/internal/catalog/model"
	"stone-price-service/internal/utils"
)

// Ожидаемые колонки синхронизированной таблицы. Через "|" перечислены
// альтернативы: вьетнамские заголовки исходной таблицы и их snake-case
// алиасы, которые пишет внешний синхронизатор.
const (
	colStone       = "LOẠI ĐÁ|loai_da|stone type"
	colProcessing  = "CÁCH GIA CÔNG|gia_cong|processing"
	colDescription = "Mô tả Sản Phẩm|mo_ta|description"
	colUnitPrice   = "Đơn giá|don_gia|unit price"
	colUSDPc       = "USD/PC|usd_pc"
	colUSDM2       = "USD/M2|usd_m2"
	colUSDM3       = "USD/M3|usd_m3"
	colUSDTon      = "USD/TON|usd_ton"
	colYear        = "Year|year"
	colHeight      = "H"
	colWidth       = "W"
	colLength      = "L"
)

// порог схожести для нечёткого подбора заголовка
const headerFuzzyThreshold = 0.8

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}/]+`)

// normHeaderKey нормализует имя колонки: нижний регистр, NBSP → пробел,
// служебные символы → пробел, схлопывание пробелов.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey ищет реальный ключ записи по желаемому имени колонки.
// Порядок: точное совпадение → нормализованное → contains → fuzzy
// (Дамерау-Левенштейн). Однобуквенные имена (H/W/L) сопоставляются
// только точно, иначе contains находит их внутри чужих заголовков.
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	var nAlts []string
	for _, a := range alts {
		nAlts = append(nAlts, normHeaderKey(a))
	}

	for k := range rec {
		nk := normHeaderKey(k)
		for _, n := range nAlts {
			if nk == n {
				return k
			}
		}
	}

	bestKey := ""
	bestScore := 0.0
	for k := range rec {
		nk := normHeaderKey(k)
		if len([]rune(nk)) < 2 {
			continue // однобуквенные колонки (H/W/L) — только точное совпадение
		}
		for _, n := range nAlts {
			if len([]rune(n)) < 2 {
				continue
			}
			score := 0.0
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				score = 1 + float64(len(n))
			} else if s := similarity(nk, n); s >= headerFuzzyThreshold {
				score = s
			}
			if score > bestScore {
				bestScore, bestKey = score, k
			}
		}
	}
	return bestKey
}

// keys — резолвленные имена колонок для конкретного файла.
type keys struct {
	stone, processing, description      string
	unitPrice, usdPc, usdM2, usdM3      string
	usdTon, year, height, width, length string
}

func resolveKeys(rec map[string]string) keys {
	return keys{
		stone:       resolveKey(rec, colStone),
		processing:  resolveKey(rec, colProcessing),
		description: resolveKey(rec, colDescription),
		unitPrice:   resolveKey(rec, colUnitPrice),
		usdPc:       resolveKey(rec, colUSDPc),
		usdM2:       resolveKey(rec, colUSDM2),
		usdM3:       resolveKey(rec, colUSDM3),
		usdTon:      resolveKey(rec, colUSDTon),
		year:        resolveKey(rec, colYear),
		height:      resolveKey(rec, colHeight),
		width:       resolveKey(rec, colWidth),
		length:      resolveKey(rec, colLength),
	}
}

// повторная шапка внутри данных (встречается после склейки листов)
func looksLikeHeader(rec map[string]string, k keys) bool {
	stone := strings.ToUpper(strings.TrimSpace(rec[k.stone]))
	return strings.Contains(stone, "LOẠI") || stone == "STONE TYPE"
}

// Products конвертирует сырые строки файла в записи каталога.
// Числовые ячейки, которые не парсятся, становятся nil, а не ошибкой;
// строки без типа камня отбрасываются.
func Products(maps []map[string]string) []model.Product {
	if len(maps) == 0 {
		return nil
	}
	k := resolveKeys(maps[0])

	out := make([]model.Product, 0, len(maps))
	for _, rec := range maps {
		if looksLikeHeader(rec, k) {
			continue
		}
		stone := strings.TrimSpace(rec[k.stone])
		if stone == "" {
			continue
		}
		out = append(out, model.Product{
			StoneType:   stone,
			Processing:  strings.TrimSpace(rec[k.processing]),
			Description: strings.TrimSpace(rec[k.description]),
			UnitPrice:   utils.ParseFloatPtr(rec[k.unitPrice]),
			USDPc:       utils.ParseFloatPtr(rec[k.usdPc]),
			USDM2:       utils.ParseFloatPtr(rec[k.usdM2]),
			USDM3:       utils.ParseFloatPtr(rec[k.usdM3]),
			USDTon:      utils.ParseFloatPtr(rec[k.usdTon]),
			Year:        utils.ParseIntPtr(rec[k.year]),
			Height:      utils.ParseFloatPtr(rec[k.height]),
			Width:       utils.ParseFloatPtr(rec[k.width]),
			Length:      utils.ParseFloatPtr(rec[k.length]),
		})
	}
	return out
}
