package validators

import "strings"

const DefaultCountryCode = "+58"

// NormalizePhone converte um telefone para o formato de armazenamento
// (+58XXXXXXXXXX, sem espaços). Valores já prefixados com "+" são
// considerados normalizados.
func NormalizePhone(value string, countryCode string) string {
	value = strings.TrimSpace(value)
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	if strings.HasPrefix(value, "+") {
		return stripNonDigits(value, true)
	}

	digits := stripNonDigits(value, false)
	codeDigits := stripNonDigits(countryCode, false)

	if strings.HasPrefix(digits, codeDigits) {
		digits = strings.TrimPrefix(digits, codeDigits)
	} else {
		// prefixo troncal nacional ("0414..." → "414...")
		digits = strings.TrimPrefix(digits, "0")
	}

	return countryCode + digits
}

func IsValidPhone(value string) bool {
	digits := stripNonDigits(value, false)
	return len(digits) >= 8 && len(digits) <= 15
}

func stripNonDigits(s string, keepPlus bool) string {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if keepPlus && r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
