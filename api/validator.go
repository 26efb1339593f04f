package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return ValidCPF(fl.Field().String())
		})
	}
}

// ValidCPF checks a Brazilian CPF, with or without punctuation, including
// both check digits. Repeated-digit sequences like 111.111.111-11 pass the
// checksum but are rejected by the registry, so they are rejected here too.
func ValidCPF(cpf string) bool {
	digits := make([]int, 0, 11)
	for _, r := range cpf {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	if len(digits) != 11 {
		return false
	}

	same := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	return checkDigit(digits, 9) == digits[9] && checkDigit(digits, 10) == digits[10]
}

func checkDigit(digits []int, length int) int {
	sum := 0
	for i := 0; i < length; i++ {
		sum += digits[i] * (length + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
