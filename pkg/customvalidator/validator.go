package customvalidator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+\d{8,15}$`)
	digitsOnly = regexp.MustCompile(`\D`)
)

// RegisterCustomValidations регистрирует правила проекта в валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("document_number", isDocumentNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone_intl", isInternationalPhone); err != nil {
		return err
	}
	if err := v.RegisterValidation("rating", isRating); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(stringValue(fl.Field()))
}

// isDocumentNumber: CPF (11 цифр) или CNPJ (14 цифр), пунктуация игнорируется.
func isDocumentNumber(fl validator.FieldLevel) bool {
	digits := digitsOnly.ReplaceAllString(stringValue(fl.Field()), "")
	return len(digits) == 11 || len(digits) == 14
}

func isInternationalPhone(fl validator.FieldLevel) bool {
	s := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(stringValue(fl.Field()))
	return phoneRegex.MatchString(s)
}

func isRating(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		return f.Float() >= 1 && f.Float() <= 5
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return f.Int() >= 1 && f.Int() <= 5
	}
	return false
}

func stringValue(f reflect.Value) string {
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return ""
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return ""
	}
	return f.String()
}
