// Package validators wires custom binding rules into gin's validator engine.
package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "demopilot/internal/domain/subscription/valueobjects"
)

// Register installs the custom validation tags. Must be called once before
// the router starts serving.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("plantype", validatePlanType)
}

// validatePlanType accepts any known plan type. Whether the plan can be
// checked out (paid tiers only) is a use case rule, not a binding rule.
func validatePlanType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		// empty values are handled by 'required'
		return true
	}

	return vo.ValidPlanTypes[vo.PlanType(value)]
}
