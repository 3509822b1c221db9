package service

import (
	"fmt"
	"strings"
	"unicode"

	"stone-price-service/internal/catalog/model"
)

// alphaPrefix — первые n символов строки в верхнем регистре, только буквы.
func alphaPrefix(s string, n int) string {
	var b strings.Builder
	for i, r := range []rune(strings.ToUpper(s)) {
		if i >= n {
			break
		}
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncDim(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

// ProductCode строит человекочитаемый код строки каталога:
// 3 буквы камня + 2 буквы обработки + усечённые H/W/L + индекс строки,
// например GRA-FL-81515-007. Код детерминирован для конкретного датасета;
// уникальность не гарантируется и не проверяется.
func ProductCode(p model.Product, index int) string {
	return fmt.Sprintf("%s-%s-%d%d%d-%03d",
		alphaPrefix(p.StoneType, 3),
		alphaPrefix(p.Processing, 2),
		truncDim(p.Height), truncDim(p.Width), truncDim(p.Length),
		index)
}
