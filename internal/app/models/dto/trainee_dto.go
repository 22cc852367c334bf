package dto

import (
	"strings"
	"time"

	"github.com/yigit/traineehub/internal/app/models"
)

const dateLayout = "2006-01-02"

// CreateTraineeRequest is the payload for registering a trainee
type CreateTraineeRequest struct {
	TraineeCode      string  `json:"traineeCode" binding:"required"`
	FirstName        string  `json:"firstName" binding:"required"`
	LastName         string  `json:"lastName" binding:"required"`
	FirstNameKana    *string `json:"firstNameKana"`
	LastNameKana     *string `json:"lastNameKana"`
	Nationality      string  `json:"nationality" binding:"required"`
	PassportNumber   string  `json:"passportNumber" binding:"required"`
	VisaType         string  `json:"visaType" binding:"required"`
	VisaExpiryDate   string  `json:"visaExpiryDate" binding:"required,datetime=2006-01-02" example:"2025-12-31"`
	EntryDate        string  `json:"entryDate" binding:"required,datetime=2006-01-02" example:"2024-04-01"`
	DepartureDate    *string `json:"departureDate" binding:"omitempty,datetime=2006-01-02"`
	Department       string  `json:"department" binding:"required"`
	Position         *string `json:"position"`
	PhoneNumber      *string `json:"phoneNumber"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`
	EmergencyPhone   *string `json:"emergencyPhone"`
}

// ToModel builds an active trainee from the request. Dates were validated by binding.
func (r CreateTraineeRequest) ToModel() *models.Trainee {
	return &models.Trainee{
		TraineeCode:      strings.TrimSpace(r.TraineeCode),
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		FirstNameKana:    r.FirstNameKana,
		LastNameKana:     r.LastNameKana,
		Nationality:      r.Nationality,
		PassportNumber:   r.PassportNumber,
		VisaType:         r.VisaType,
		VisaExpiryDate:   mustDate(r.VisaExpiryDate),
		EntryDate:        mustDate(r.EntryDate),
		DepartureDate:    optionalDate(r.DepartureDate),
		Department:       r.Department,
		Position:         r.Position,
		PhoneNumber:      r.PhoneNumber,
		Email:            r.Email,
		Address:          r.Address,
		EmergencyContact: r.EmergencyContact,
		EmergencyPhone:   r.EmergencyPhone,
		IsActive:         true,
	}
}

// UpdateTraineeRequest is a partial update; nil fields are left untouched
type UpdateTraineeRequest struct {
	TraineeCode      *string `json:"traineeCode" binding:"omitempty,min=1"`
	FirstName        *string `json:"firstName" binding:"omitempty,min=1"`
	LastName         *string `json:"lastName" binding:"omitempty,min=1"`
	FirstNameKana    *string `json:"firstNameKana"`
	LastNameKana     *string `json:"lastNameKana"`
	Nationality      *string `json:"nationality" binding:"omitempty,min=1"`
	PassportNumber   *string `json:"passportNumber" binding:"omitempty,min=1"`
	VisaType         *string `json:"visaType" binding:"omitempty,min=1"`
	VisaExpiryDate   *string `json:"visaExpiryDate" binding:"omitempty,datetime=2006-01-02"`
	EntryDate        *string `json:"entryDate" binding:"omitempty,datetime=2006-01-02"`
	DepartureDate    *string `json:"departureDate" binding:"omitempty,datetime=2006-01-02"`
	Department       *string `json:"department" binding:"omitempty,min=1"`
	Position         *string `json:"position"`
	PhoneNumber      *string `json:"phoneNumber"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`
	EmergencyPhone   *string `json:"emergencyPhone"`
}

// ApplyTo copies the set fields onto t
func (r UpdateTraineeRequest) ApplyTo(t *models.Trainee) {
	setString(&t.TraineeCode, r.TraineeCode)
	setString(&t.FirstName, r.FirstName)
	setString(&t.LastName, r.LastName)
	setString(&t.Nationality, r.Nationality)
	setString(&t.PassportNumber, r.PassportNumber)
	setString(&t.VisaType, r.VisaType)
	setString(&t.Department, r.Department)

	if r.FirstNameKana != nil {
		t.FirstNameKana = r.FirstNameKana
	}
	if r.LastNameKana != nil {
		t.LastNameKana = r.LastNameKana
	}
	if r.VisaExpiryDate != nil {
		t.VisaExpiryDate = mustDate(*r.VisaExpiryDate)
	}
	if r.EntryDate != nil {
		t.EntryDate = mustDate(*r.EntryDate)
	}
	if r.DepartureDate != nil {
		t.DepartureDate = optionalDate(r.DepartureDate)
	}
	if r.Position != nil {
		t.Position = r.Position
	}
	if r.PhoneNumber != nil {
		t.PhoneNumber = r.PhoneNumber
	}
	if r.Email != nil {
		t.Email = r.Email
	}
	if r.Address != nil {
		t.Address = r.Address
	}
	if r.EmergencyContact != nil {
		t.EmergencyContact = r.EmergencyContact
	}
	if r.EmergencyPhone != nil {
		t.EmergencyPhone = r.EmergencyPhone
	}
}

// TraineeListResponse is one page of trainees
type TraineeListResponse struct {
	Trainees   []models.TraineeSummary `json:"trainees"`
	Pagination PaginationInfo          `json:"pagination"`
}

// EvaluationDetail is an evaluation with its skill and evaluator
type EvaluationDetail struct {
	models.Evaluation
	SkillName     string `json:"skillName"`
	EvaluatorName string `json:"evaluatorName"`
}

// InterviewDetail is an interview with its interviewer
type InterviewDetail struct {
	models.Interview
	InterviewerName string `json:"interviewerName"`
}

// DevelopmentPlanDetail is a plan with its creator
type DevelopmentPlanDetail struct {
	models.DevelopmentPlan
	CreatorName string `json:"creatorName"`
}

// TraineeDetailResponse is a trainee with its related records
type TraineeDetailResponse struct {
	models.Trainee
	HealthRecords    []models.HealthRecord   `json:"healthRecords"`
	Certificates     []models.Certificate    `json:"certificates"`
	Evaluations      []EvaluationDetail      `json:"evaluations"`
	DevelopmentPlans []DevelopmentPlanDetail `json:"developmentPlans"`
	Interviews       []InterviewDetail       `json:"interviews"`
	OJTRecords       []models.OJTRecord      `json:"ojtRecords"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func mustDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func optionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := mustDate(*s)
	return &t
}

// TraineeListQuery holds the query string of the trainee listing
type TraineeListQuery struct {
	Search      string `form:"search"`
	Nationality string `form:"nationality"`
	Department  string `form:"department"`
	// VisaExpiry keeps trainees whose visa expires within this many days
	VisaExpiry int    `form:"visaExpiry" binding:"omitempty,min=0"`
	SortBy     string `form:"sortBy" binding:"omitempty,oneof=createdAt traineeCode firstName lastName nationality department visaExpiryDate entryDate"`
	SortOrder  string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}
