package utils

import (
	"regexp"

	"dentalbot-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("dni", validateDNI)
	validate.RegisterValidation("chat_email", validateChatEmail)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDNI(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexDNI).MatchString(fl.Field().String())
}

// validateChatEmail accepts an address or the literal "no", which the chat
// flows use to skip the optional email step.
func validateChatEmail(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == "no" {
		return true
	}
	return regexp.MustCompile(constvars.RegexEmail).MatchString(value)
}

func IsValidDNI(dni string) bool {
	return regexp.MustCompile(constvars.RegexDNI).MatchString(dni)
}

func IsValidEmail(email string) bool {
	return regexp.MustCompile(constvars.RegexEmail).MatchString(email)
}
