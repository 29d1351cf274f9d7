package model

import "github.com/go-playground/validator/v10"

// NewValidator builds a validator with the custom "clock" rule for
// mm:ss fields.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, ok := ParseClock(fl.Field().String())
		return ok
	})
	return v
}
