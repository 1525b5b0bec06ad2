package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	MsgDateTimeFormat = "Formato de data e hora inválido. Esperado ISO 8601 (ex: '2025-10-25T10:00:00')."
	MsgDateFormat     = "Formato de data inválido. Esperado AAAA-MM-DD."
)

func length(s string) int {
	return utf8.RuneCountInString(s)
}

func lengthBetween(errs *Errors, field, value string, min, max int) {
	if n := length(value); n < min || n > max {
		errs.Add(field, fmt.Sprintf("deve ter entre %d e %d caracteres", min, max))
	}
}

func maxLength(errs *Errors, field, value string, max int) {
	if length(value) > max {
		errs.Add(field, fmt.Sprintf("deve ter no máximo %d caracteres", max))
	}
}

func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// positiveMoney accepts values > 0 with at most two decimal places.
func positiveMoney(errs *Errors, field string, n json.Number) float64 {
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		errs.Add(field, "deve ser um número")
		return 0
	}
	if f <= 0 {
		errs.Add(field, "deve ser um valor positivo")
		return 0
	}
	if cents := f * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
		errs.Add(field, "deve ter no máximo 2 casas decimais")
		return 0
	}
	if f >= 1e8 {
		errs.Add(field, "excede o valor máximo permitido")
		return 0
	}
	return math.Round(f*100) / 100
}

func positiveInt(errs *Errors, field string, n json.Number) int {
	i, err := n.Int64()
	if err != nil {
		errs.Add(field, "deve ser um número inteiro")
		return 0
	}
	if i <= 0 {
		errs.Add(field, "deve ser um inteiro positivo")
		return 0
	}
	if i > math.MaxInt32 {
		errs.Add(field, "excede o valor máximo permitido")
		return 0
	}
	return int(i)
}
