package models

import "time"

// TraineeRef is the minimal trainee identity carried by alerts and activities.
type TraineeRef struct {
	ID          int64  `json:"id"`
	TraineeCode string `json:"traineeCode"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Department  string `json:"department"`
}

// FullName renders "last first", the order used across the UI and CSV export.
func (r TraineeRef) FullName() string {
	return r.LastName + " " + r.FirstName
}

// TraineeGroup names a column the statistics may group trainees by.
type TraineeGroup string

const (
	GroupByNationality TraineeGroup = "nationality"
	GroupByDepartment  TraineeGroup = "department"
)

// GroupCount is one bucket of a group-by count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// EvaluationSample is the slice of an evaluation the skill average needs.
type EvaluationSample struct {
	EvaluationID   int64
	TraineeID      int64
	SkillID        int64
	Level          int
	EvaluationDate time.Time
}

// EvaluationPair identifies a (trainee, skill) combination.
type EvaluationPair struct {
	TraineeID int64
	SkillID   int64
}

// TraineeLastEvent pairs a trainee with the date of its most recent event of some kind, nil if none.
type TraineeLastEvent struct {
	Trainee TraineeRef
	Last    *time.Time
}

// DashboardStats is the statistics block of the dashboard.
type DashboardStats struct {
	TotalTrainees     int64        `json:"totalTrainees"`
	NewTrainees       int64        `json:"newTrainees"`
	AverageSkillLevel float64      `json:"averageSkillLevel"`
	NationalityStats  []GroupCount `json:"nationalityStats"`
	DepartmentStats   []GroupCount `json:"departmentStats"`
}

// VisaExpiryAlert flags a visa expiring within the threshold (or already expired).
type VisaExpiryAlert struct {
	TraineeRef
	VisaExpiryDate time.Time `json:"visaExpiryDate"`
	DaysRemaining  int       `json:"daysRemaining"`
}

// CertificateExpiryAlert flags an active certificate expiring within the threshold.
type CertificateExpiryAlert struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ExpiryDate    time.Time  `json:"expiryDate"`
	DaysRemaining int        `json:"daysRemaining"`
	Trainee       TraineeRef `json:"trainee"`
}

// HealthCheckAlert flags a trainee whose yearly health check is due. NextDueDate and
// DaysRemaining are nil when no check was ever recorded.
type HealthCheckAlert struct {
	TraineeRef
	LastHealthCheck *time.Time `json:"lastHealthCheck"`
	NextDueDate     *time.Time `json:"nextDueDate"`
	DaysRemaining   *int       `json:"daysRemaining"`
}

// EvaluationDueAlert is a (trainee, skill) pair not evaluated in the current period.
type EvaluationDueAlert struct {
	TraineeID   int64  `json:"traineeId"`
	TraineeCode string `json:"traineeCode"`
	TraineeName string `json:"traineeName"`
	Department  string `json:"department"`
	SkillID     int64  `json:"skillId"`
	SkillName   string `json:"skillName"`
	Period      string `json:"period"`
}

// InterviewDueAlert flags a trainee without a recent interview.
type InterviewDueAlert struct {
	TraineeRef
	LastInterview *time.Time `json:"lastInterview"`
}

// DashboardAlerts holds the five alert categories.
type DashboardAlerts struct {
	VisaExpiry        []VisaExpiryAlert        `json:"visaExpiry"`
	CertificateExpiry []CertificateExpiryAlert `json:"certificateExpiry"`
	HealthCheckDue    []HealthCheckAlert       `json:"healthCheckDue"`
	EvaluationDue     []EvaluationDueAlert     `json:"evaluationDue"`
	InterviewDue      []InterviewDueAlert      `json:"interviewDue"`
}

// EvaluationActivity is an evaluation joined with trainee, skill and evaluator names.
type EvaluationActivity struct {
	ID             int64      `json:"id"`
	Level          int        `json:"level"`
	Period         string     `json:"period"`
	Comment        *string    `json:"comment,omitempty"`
	EvaluationDate time.Time  `json:"evaluationDate"`
	Trainee        TraineeRef `json:"trainee"`
	SkillName      string     `json:"skillName"`
	EvaluatorName  string     `json:"evaluatorName"`
}

// InterviewActivity is an interview joined with trainee and interviewer names.
type InterviewActivity struct {
	ID              int64         `json:"id"`
	Type            InterviewType `json:"type"`
	InterviewDate   time.Time     `json:"interviewDate"`
	Content         string        `json:"content"`
	Trainee         TraineeRef    `json:"trainee"`
	InterviewerName string        `json:"interviewerName"`
}

// OJTActivity is an OJT record joined with trainee and trainer names.
type OJTActivity struct {
	ID          int64      `json:"id"`
	Date        time.Time  `json:"date"`
	Content     string     `json:"content"`
	Duration    *int       `json:"duration,omitempty"`
	Progress    *string    `json:"progress,omitempty"`
	Trainee     TraineeRef `json:"trainee"`
	TrainerName *string    `json:"trainerName,omitempty"`
}

// RecentActivities holds three independently sorted and truncated lists.
type RecentActivities struct {
	Evaluations []EvaluationActivity `json:"evaluations"`
	Interviews  []InterviewActivity  `json:"interviews"`
	OJTRecords  []OJTActivity        `json:"ojtRecords"`
}

// DashboardOverview bundles the three dashboard reads.
type DashboardOverview struct {
	Stats            *DashboardStats   `json:"stats"`
	Alerts           *DashboardAlerts  `json:"alerts"`
	RecentActivities *RecentActivities `json:"recentActivities"`
}
