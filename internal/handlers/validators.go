package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerBindingValidators installs custom binding rules on gin's shared
// validator engine.
func registerBindingValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// acctcode: chart-of-accounts codes are plain digit strings.
		_ = v.RegisterValidation("acctcode", func(fl validator.FieldLevel) bool {
			code := fl.Field().String()
			if code == "" {
				return false
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		})
	})
}
