package models

import "time"

// Certificate belongs to exactly one trainee
type Certificate struct {
	ID          int64      `json:"id" db:"id"`
	TraineeID   int64      `json:"traineeId" db:"trainee_id"`
	Name        string     `json:"name" db:"name"`
	IssuingBody *string    `json:"issuingBody,omitempty" db:"issuing_body"`
	IssueDate   *time.Time `json:"issueDate,omitempty" db:"issue_date"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty" db:"expiry_date"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// HealthRecord belongs to exactly one trainee
type HealthRecord struct {
	ID          int64            `json:"id" db:"id"`
	TraineeID   int64            `json:"traineeId" db:"trainee_id"`
	RecordDate  time.Time        `json:"recordDate" db:"record_date"`
	RecordType  HealthRecordType `json:"recordType" db:"record_type"`
	Description *string          `json:"description,omitempty" db:"description"`
	DoctorName  *string          `json:"doctorName,omitempty" db:"doctor_name"`
	ClinicName  *string          `json:"clinicName,omitempty" db:"clinic_name"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// SkillMaster is a catalog entry. Levels maps a proficiency level ("1".."5") to its description.
type SkillMaster struct {
	ID          int64             `json:"id" db:"id"`
	Name        string            `json:"name" db:"name" example:"日本語能力"`
	Category    string            `json:"category" db:"category" example:"言語"`
	Description *string           `json:"description,omitempty" db:"description"`
	Levels      map[string]string `json:"levels" db:"levels"`
	IsActive    bool              `json:"isActive" db:"is_active"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}

// Evaluation scores one trainee on one skill for a quarter period ("2024-Q3").
type Evaluation struct {
	ID             int64     `json:"id" db:"id"`
	TraineeID      int64     `json:"traineeId" db:"trainee_id"`
	EvaluatorID    int64     `json:"evaluatorId" db:"evaluator_id"`
	SkillID        int64     `json:"skillId" db:"skill_id"`
	Level          int       `json:"level" db:"level"` // 1..5
	Comment        *string   `json:"comment,omitempty" db:"comment"`
	EvaluationDate time.Time `json:"evaluationDate" db:"evaluation_date"`
	Period         string    `json:"period" db:"period"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Interview is conducted by a user with one trainee
type Interview struct {
	ID            int64         `json:"id" db:"id"`
	TraineeID     int64         `json:"traineeId" db:"trainee_id"`
	InterviewerID int64         `json:"interviewerId" db:"interviewer_id"`
	InterviewDate time.Time     `json:"interviewDate" db:"interview_date"`
	Type          InterviewType `json:"type" db:"type"`
	Content       string        `json:"content" db:"content"`
	Concerns      *string       `json:"concerns,omitempty" db:"concerns"`
	HealthStatus  *string       `json:"healthStatus,omitempty" db:"health_status"`
	Progress      *string       `json:"progress,omitempty" db:"progress"`
	NextSteps     *string       `json:"nextSteps,omitempty" db:"next_steps"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// OJTRecord is an on-the-job training log entry
type OJTRecord struct {
	ID        int64     `json:"id" db:"id"`
	TraineeID int64     `json:"traineeId" db:"trainee_id"`
	TrainerID *int64    `json:"trainerId,omitempty" db:"trainer_id"`
	Date      time.Time `json:"date" db:"date"`
	Content   string    `json:"content" db:"content"`
	Duration  *int      `json:"duration,omitempty" db:"duration"` // minutes
	Progress  *string   `json:"progress,omitempty" db:"progress"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// DevelopmentPlan is a training plan created for a trainee
type DevelopmentPlan struct {
	ID          int64      `json:"id" db:"id"`
	TraineeID   int64      `json:"traineeId" db:"trainee_id"`
	CreatorID   int64      `json:"creatorId" db:"creator_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	StartDate   time.Time  `json:"startDate" db:"start_date"`
	EndDate     time.Time  `json:"endDate" db:"end_date"`
	Goals       []string   `json:"goals" db:"goals"`
	Status      PlanStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Notification is a stored alert. DedupeKey keeps repeated scans from inserting the same alert twice.
type Notification struct {
	ID         int64                `json:"id" db:"id"`
	UserID     *int64               `json:"userId,omitempty" db:"user_id"`
	TraineeID  *int64               `json:"traineeId,omitempty" db:"trainee_id"`
	Department *string              `json:"department,omitempty" db:"department"`
	Type       NotificationType     `json:"type" db:"type"`
	Title      string               `json:"title" db:"title"`
	Message    string               `json:"message" db:"message"`
	Priority   NotificationPriority `json:"priority" db:"priority"`
	IsRead     bool                 `json:"isRead" db:"is_read"`
	DedupeKey  string               `json:"-" db:"dedupe_key"`
	CreatedAt  time.Time            `json:"createdAt" db:"created_at"`
}
