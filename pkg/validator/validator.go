package validator

import (
	"regexp"

	validators "github.com/go-playground/validator/v10"
)

// secretTokenPattern matches the character set Telegram accepts for a webhook secret_token.
var secretTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,256}$`)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
	ValidateVar(field interface{}, tag string) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("secrettoken", func(fl validators.FieldLevel) bool {
		return secretTokenPattern.MatchString(fl.Field().String())
	})
	return &validator{
		validator: v,
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(inf interface{}) error {
	return v.validator.Struct(inf)
}

// ValidateVar func
func (v *validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}
