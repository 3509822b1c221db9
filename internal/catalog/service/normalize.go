package service

import "strings"

// Известные семейства камня. Порядок важен: префиксы проверяются как есть,
// более длинные имена семейств должны идти раньше коротких.
var baseTypes = []string{"BAZAN", "BLUESTONE", "GRANITE"}

// Normalize приводит название камня/обработки к канонической форме:
// trim, верхний регистр, схлопывание пробелов. Идемпотентна.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// BaseType выделяет семейство камня: известный префикс (BAZAN, BLUESTONE,
// GRANITE) либо первый токен нормализованного имени.
func BaseType(s string) string {
	n := Normalize(s)
	for _, bt := range baseTypes {
		if strings.HasPrefix(n, bt) {
			return bt
		}
	}
	if f := strings.Fields(n); len(f) > 0 {
		return f[0]
	}
	return n
}
