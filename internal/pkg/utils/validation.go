package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate       *validator.Validate
	bloodTypeRegex = regexp.MustCompile(`^(A|B|AB|O)[+-]$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("blood_type", validateBloodType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateBloodType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return bloodTypeRegex.MatchString(value)
}
