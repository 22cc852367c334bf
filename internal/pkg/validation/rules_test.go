package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/models"
)

type sample struct {
	Period string                  `validate:"period"`
	Role   models.RoleType         `validate:"role"`
	Health models.HealthRecordType `validate:"healthrecordtype"`
	Type   models.InterviewType    `validate:"interviewtype"`
	Status models.PlanStatus       `validate:"planstatus"`
}

func valid() sample {
	return sample{
		Period: "2024-Q3",
		Role:   models.RoleDepartment,
		Health: models.HealthRecordCheck,
		Type:   models.InterviewRegular,
		Status: models.PlanActive,
	}
}

func TestRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	require.NoError(t, v.Struct(valid()))

	tests := []struct {
		name   string
		mutate func(*sample)
		tag    string
	}{
		{"bad quarter", func(s *sample) { s.Period = "2024-Q5" }, "period"},
		{"bad period shape", func(s *sample) { s.Period = "Q3-2024" }, "period"},
		{"unknown role", func(s *sample) { s.Role = "OWNER" }, "role"},
		{"unknown health record", func(s *sample) { s.Health = "XRAY" }, "healthrecordtype"},
		{"unknown interview", func(s *sample) { s.Type = "CASUAL" }, "interviewtype"},
		{"unknown plan status", func(s *sample) { s.Status = "PAUSED" }, "planstatus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := v.Struct(s)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.tag, verrs[0].Tag())
		})
	}
}
