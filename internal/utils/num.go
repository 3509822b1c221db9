package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d\.\-]`)

// ParseFloat разбирает числовые ячейки каталога: "1,234.50", "$ 86.4",
// "12 500" (NBSP/NNBSP), "N/A" и т.п. Запятые считаются разделителями
// тысяч и выбрасываются. Непарсибельное значение — (0, false), не ошибка.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	repl := strings.NewReplacer(" ", "", " ", "", " ", "", " ", "", "\t", "", ",", "")
	s = repl.Replace(s)
	// остаются только цифры, точка и минус (валюта и прочий мусор — прочь)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// ParseFloatPtr — то же, но nil вместо флага: удобно для nullable-полей.
func ParseFloatPtr(s string) *float64 {
	if f, ok := ParseFloat(s); ok {
		return &f
	}
	return nil
}

// ParseIntPtr — целое с той же терпимостью к мусору (год выпуска и т.п.).
func ParseIntPtr(s string) *int {
	f, ok := ParseFloat(s)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}
