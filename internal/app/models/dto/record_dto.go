package dto

import (
	"github.com/yigit/traineehub/internal/app/models"
)

// CreateCertificateRequest registers a certificate for a trainee
type CreateCertificateRequest struct {
	TraineeID   int64   `json:"traineeId" binding:"required,min=1"`
	Name        string  `json:"name" binding:"required"`
	IssuingBody *string `json:"issuingBody"`
	IssueDate   *string `json:"issueDate" binding:"omitempty,datetime=2006-01-02"`
	ExpiryDate  *string `json:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
}

func (r CreateCertificateRequest) ToModel() *models.Certificate {
	return &models.Certificate{
		TraineeID:   r.TraineeID,
		Name:        r.Name,
		IssuingBody: r.IssuingBody,
		IssueDate:   optionalDate(r.IssueDate),
		ExpiryDate:  optionalDate(r.ExpiryDate),
		IsActive:    true,
	}
}

// UpdateCertificateRequest is a partial certificate update
type UpdateCertificateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	IssuingBody *string `json:"issuingBody"`
	IssueDate   *string `json:"issueDate" binding:"omitempty,datetime=2006-01-02"`
	ExpiryDate  *string `json:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
}

func (r UpdateCertificateRequest) ApplyTo(c *models.Certificate) {
	setString(&c.Name, r.Name)
	if r.IssuingBody != nil {
		c.IssuingBody = r.IssuingBody
	}
	if r.IssueDate != nil {
		c.IssueDate = optionalDate(r.IssueDate)
	}
	if r.ExpiryDate != nil {
		c.ExpiryDate = optionalDate(r.ExpiryDate)
	}
}

// CreateHealthRecordRequest adds a health record to a trainee
type CreateHealthRecordRequest struct {
	RecordDate  string                  `json:"recordDate" binding:"required,datetime=2006-01-02"`
	RecordType  models.HealthRecordType `json:"recordType" binding:"required,healthrecordtype"`
	Description *string                 `json:"description"`
	DoctorName  *string                 `json:"doctorName"`
	ClinicName  *string                 `json:"clinicName"`
}

func (r CreateHealthRecordRequest) ToModel(traineeID int64) *models.HealthRecord {
	return &models.HealthRecord{
		TraineeID:   traineeID,
		RecordDate:  mustDate(r.RecordDate),
		RecordType:  r.RecordType,
		Description: r.Description,
		DoctorName:  r.DoctorName,
		ClinicName:  r.ClinicName,
	}
}

// CreateEvaluationRequest scores a trainee on a skill. The evaluator is the caller.
type CreateEvaluationRequest struct {
	TraineeID      int64   `json:"traineeId" binding:"required,min=1"`
	SkillID        int64   `json:"skillId" binding:"required,min=1"`
	Level          int     `json:"level" binding:"required,min=1,max=5"`
	Comment        *string `json:"comment"`
	EvaluationDate string  `json:"evaluationDate" binding:"required,datetime=2006-01-02"`
	Period         string  `json:"period" binding:"required,period" example:"2024-Q3"`
}

func (r CreateEvaluationRequest) ToModel(evaluatorID int64) *models.Evaluation {
	return &models.Evaluation{
		TraineeID:      r.TraineeID,
		EvaluatorID:    evaluatorID,
		SkillID:        r.SkillID,
		Level:          r.Level,
		Comment:        r.Comment,
		EvaluationDate: mustDate(r.EvaluationDate),
		Period:         r.Period,
	}
}

// UpdateEvaluationRequest is a partial evaluation update
type UpdateEvaluationRequest struct {
	Level          *int    `json:"level" binding:"omitempty,min=1,max=5"`
	Comment        *string `json:"comment"`
	EvaluationDate *string `json:"evaluationDate" binding:"omitempty,datetime=2006-01-02"`
	Period         *string `json:"period" binding:"omitempty,period"`
}

func (r UpdateEvaluationRequest) ApplyTo(e *models.Evaluation) {
	if r.Level != nil {
		e.Level = *r.Level
	}
	if r.Comment != nil {
		e.Comment = r.Comment
	}
	if r.EvaluationDate != nil {
		e.EvaluationDate = mustDate(*r.EvaluationDate)
	}
	setString(&e.Period, r.Period)
}

// CreateInterviewRequest records an interview conducted by the caller
type CreateInterviewRequest struct {
	TraineeID     int64                `json:"traineeId" binding:"required,min=1"`
	InterviewDate string               `json:"interviewDate" binding:"required,datetime=2006-01-02"`
	Type          models.InterviewType `json:"type" binding:"required,interviewtype"`
	Content       string               `json:"content" binding:"required"`
	Concerns      *string              `json:"concerns"`
	HealthStatus  *string              `json:"healthStatus"`
	Progress      *string              `json:"progress"`
	NextSteps     *string              `json:"nextSteps"`
}

func (r CreateInterviewRequest) ToModel(interviewerID int64) *models.Interview {
	return &models.Interview{
		TraineeID:     r.TraineeID,
		InterviewerID: interviewerID,
		InterviewDate: mustDate(r.InterviewDate),
		Type:          r.Type,
		Content:       r.Content,
		Concerns:      r.Concerns,
		HealthStatus:  r.HealthStatus,
		Progress:      r.Progress,
		NextSteps:     r.NextSteps,
	}
}

// UpdateInterviewRequest is a partial interview update
type UpdateInterviewRequest struct {
	InterviewDate *string               `json:"interviewDate" binding:"omitempty,datetime=2006-01-02"`
	Type          *models.InterviewType `json:"type" binding:"omitempty,interviewtype"`
	Content       *string               `json:"content" binding:"omitempty,min=1"`
	Concerns      *string               `json:"concerns"`
	HealthStatus  *string               `json:"healthStatus"`
	Progress      *string               `json:"progress"`
	NextSteps     *string               `json:"nextSteps"`
}

func (r UpdateInterviewRequest) ApplyTo(i *models.Interview) {
	if r.InterviewDate != nil {
		i.InterviewDate = mustDate(*r.InterviewDate)
	}
	if r.Type != nil {
		i.Type = *r.Type
	}
	setString(&i.Content, r.Content)
	if r.Concerns != nil {
		i.Concerns = r.Concerns
	}
	if r.HealthStatus != nil {
		i.HealthStatus = r.HealthStatus
	}
	if r.Progress != nil {
		i.Progress = r.Progress
	}
	if r.NextSteps != nil {
		i.NextSteps = r.NextSteps
	}
}

// CreateOJTRecordRequest logs on-the-job training for a trainee
type CreateOJTRecordRequest struct {
	TrainerID *int64  `json:"trainerId" binding:"omitempty,min=1"`
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	Content   string  `json:"content" binding:"required"`
	Duration  *int    `json:"duration" binding:"omitempty,min=1"`
	Progress  *string `json:"progress"`
	Notes     *string `json:"notes"`
}

func (r CreateOJTRecordRequest) ToModel(traineeID int64) *models.OJTRecord {
	return &models.OJTRecord{
		TraineeID: traineeID,
		TrainerID: r.TrainerID,
		Date:      mustDate(r.Date),
		Content:   r.Content,
		Duration:  r.Duration,
		Progress:  r.Progress,
		Notes:     r.Notes,
	}
}

// CreateDevelopmentPlanRequest creates a plan authored by the caller
type CreateDevelopmentPlanRequest struct {
	TraineeID   int64    `json:"traineeId" binding:"required,min=1"`
	Title       string   `json:"title" binding:"required"`
	Description *string  `json:"description"`
	StartDate   string   `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" binding:"required,datetime=2006-01-02"`
	Goals       []string `json:"goals" binding:"omitempty,dive,required"`
}

func (r CreateDevelopmentPlanRequest) ToModel(creatorID int64) *models.DevelopmentPlan {
	goals := r.Goals
	if goals == nil {
		goals = []string{}
	}
	return &models.DevelopmentPlan{
		TraineeID:   r.TraineeID,
		CreatorID:   creatorID,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   mustDate(r.StartDate),
		EndDate:     mustDate(r.EndDate),
		Goals:       goals,
		Status:      models.PlanActive,
	}
}

// UpdateDevelopmentPlanRequest is a partial plan update
type UpdateDevelopmentPlanRequest struct {
	Title       *string            `json:"title" binding:"omitempty,min=1"`
	Description *string            `json:"description"`
	StartDate   *string            `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string            `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Goals       []string           `json:"goals" binding:"omitempty,dive,required"`
	Status      *models.PlanStatus `json:"status" binding:"omitempty,planstatus"`
}

func (r UpdateDevelopmentPlanRequest) ApplyTo(p *models.DevelopmentPlan) {
	setString(&p.Title, r.Title)
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.StartDate != nil {
		p.StartDate = mustDate(*r.StartDate)
	}
	if r.EndDate != nil {
		p.EndDate = mustDate(*r.EndDate)
	}
	if r.Goals != nil {
		p.Goals = r.Goals
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
}

// NotificationListResponse is one page of notifications
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
	Pagination    PaginationInfo        `json:"pagination"`
}

// AlertScanResponse reports a manual alert scan
type AlertScanResponse struct {
	Queued  bool   `json:"queued"`
	TaskID  string `json:"taskId,omitempty"`
	Created int    `json:"created"`
}

// RecordListQuery narrows a per-trainee record listing
type RecordListQuery struct {
	TraineeID int64             `form:"traineeId" binding:"omitempty,min=1"`
	Period    string            `form:"period" binding:"omitempty,period"`
	Status    models.PlanStatus `form:"status" binding:"omitempty,planstatus"`
}

// NotificationListQuery filters the notification inbox
type NotificationListQuery struct {
	UnreadOnly bool `form:"unreadOnly"`
}
