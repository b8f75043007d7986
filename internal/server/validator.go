package server

import "github.com/go-playground/validator/v10"

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator on go-playground/validator.
func NewValidator() *CustomValidator {
	v := validator.New()
	return &CustomValidator{validator: v}
}

// Validate runs struct tag validation.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
