package auth

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
)

// Scope restricts which trainees a caller may see. An empty Department means
// every department (ADMIN). Inactive trainees are never visible through a scope.
type Scope struct {
	Role       models.RoleType
	Department string
}

// ResolveScope turns a caller's role and department into a Scope. DEPARTMENT
// callers without a department are rejected rather than widened to all trainees.
// TRAINEE callers have no dashboard scope.
func ResolveScope(role models.RoleType, department string) (Scope, error) {
	switch role {
	case models.RoleAdmin:
		return Scope{Role: role}, nil
	case models.RoleDepartment:
		department = strings.TrimSpace(department)
		if department == "" {
			return Scope{}, apperrors.NewCustomError(apperrors.ErrPermissionDenied, "department user has no department assigned")
		}
		return Scope{Role: role, Department: department}, nil
	case models.RoleTrainee:
		return Scope{}, apperrors.NewCustomError(apperrors.ErrInvalidScope, "trainee accounts cannot view aggregated records")
	default:
		return Scope{}, apperrors.NewCustomError(apperrors.ErrInvalidScope, fmt.Sprintf("unrecognized role %q", role))
	}
}

// AdminScope is the unrestricted scope used by background jobs.
func AdminScope() Scope {
	return Scope{Role: models.RoleAdmin}
}

// IsAll reports whether the scope spans every department.
func (s Scope) IsAll() bool {
	return s.Role == models.RoleAdmin
}

// Where returns the visibility predicate over the trainees table aliased as alias.
func (s Scope) Where(alias string) squirrel.Sqlizer {
	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}

	pred := squirrel.And{squirrel.Eq{col("is_active"): true}}
	if !s.IsAll() {
		pred = append(pred, squirrel.Eq{col("department"): s.Department})
	}
	return pred
}

// Allows reports whether a trainee is visible under the scope.
func (s Scope) Allows(t *models.Trainee) bool {
	if t == nil || !t.IsActive {
		return false
	}
	return s.AllowsDepartment(t.Department)
}

// AllowsDepartment ignores activity and checks only the department restriction.
func (s Scope) AllowsDepartment(department string) bool {
	return s.IsAll() || department == s.Department
}
