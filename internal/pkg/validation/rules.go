package validation

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/traineehub/internal/app/models"
)

// Validation rule patterns
var (
	// PeriodPattern matches an evaluation quarter such as 2024-Q3
	PeriodPattern = regexp.MustCompile(`^\d{4}-Q[1-4]$`)

	// PasswordMinLength mirrors the binding tags on register/change-password
	PasswordMinLength = 6
)

// rules maps tag names to their validation functions
var rules = map[string]validator.Func{
	"period": func(fl validator.FieldLevel) bool {
		return PeriodPattern.MatchString(fl.Field().String())
	},
	"role": func(fl validator.FieldLevel) bool {
		return models.RoleType(fl.Field().String()).Valid()
	},
	"healthrecordtype": func(fl validator.FieldLevel) bool {
		return models.HealthRecordType(fl.Field().String()).Valid()
	},
	"interviewtype": func(fl validator.FieldLevel) bool {
		return models.InterviewType(fl.Field().String()).Valid()
	},
	"planstatus": func(fl validator.FieldLevel) bool {
		return models.PlanStatus(fl.Field().String()).Valid()
	},
}

// Register installs the custom rules on v.
func Register(v *validator.Validate) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s rule: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin installs the custom rules on gin's binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
