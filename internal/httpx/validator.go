package httpx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("password_strength", validatePasswordStrength)
}

func validatePasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	return hasUpper && hasLower && hasNumber
}

// ValidateStruct runs the struct's validate tags and returns one
// human-readable message per failing field, in declaration order.
func ValidateStruct(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var messages []string
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		fieldName := strings.ToLower(field[:1]) + field[1:]

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", fieldName)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", fieldName)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", fieldName, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldName, param)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", fieldName, param)
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", fieldName, param)
		case "password_strength":
			message = fmt.Sprintf("%s must be at least 8 characters with uppercase, lowercase and a number", fieldName)
		default:
			message = fmt.Sprintf("%s is invalid", fieldName)
		}

		messages = append(messages, message)
	}

	return messages
}
