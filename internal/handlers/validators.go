package handlers

import (
	"sync"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("handlers: gin validator engine is not go-playground/validator")
		}
		if err := v.RegisterValidation("ratelabel", validateRateLabel); err != nil {
			panic(err)
		}
	})
}

func validateRateLabel(fl validator.FieldLevel) bool {
	_, err := domain.NormalizeCustomRateLabel(fl.Field().String())
	return err == nil
}
