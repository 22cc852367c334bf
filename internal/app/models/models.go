package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleDepartment RoleType = "DEPARTMENT"
	RoleTrainee    RoleType = "TRAINEE"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleDepartment, RoleTrainee:
		return true
	}
	return false
}

// HealthRecordType classifies a health record. Only HEALTH_CHECK feeds the alerts.
type HealthRecordType string

const (
	HealthRecordCheck        HealthRecordType = "HEALTH_CHECK"
	HealthRecordConsultation HealthRecordType = "MEDICAL_CONSULTATION"
	HealthRecordVaccination  HealthRecordType = "VACCINATION"
	HealthRecordOther        HealthRecordType = "OTHER"
)

func (t HealthRecordType) Valid() bool {
	switch t {
	case HealthRecordCheck, HealthRecordConsultation, HealthRecordVaccination, HealthRecordOther:
		return true
	}
	return false
}

// InterviewType classifies an interview
type InterviewType string

const (
	InterviewRegular  InterviewType = "REGULAR"
	InterviewProgress InterviewType = "PROGRESS"
	InterviewConcern  InterviewType = "CONCERN"
	InterviewHealth   InterviewType = "HEALTH"
	InterviewExit     InterviewType = "EXIT"
)

func (t InterviewType) Valid() bool {
	switch t {
	case InterviewRegular, InterviewProgress, InterviewConcern, InterviewHealth, InterviewExit:
		return true
	}
	return false
}

// PlanStatus is the lifecycle state of a development plan
type PlanStatus string

const (
	PlanActive    PlanStatus = "ACTIVE"
	PlanCompleted PlanStatus = "COMPLETED"
	PlanCancelled PlanStatus = "CANCELLED"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanCancelled:
		return true
	}
	return false
}

// NotificationType identifies what produced a notification
type NotificationType string

const (
	NotificationVisaExpiry        NotificationType = "VISA_EXPIRY"
	NotificationCertificateExpiry NotificationType = "CERTIFICATE_EXPIRY"
	NotificationHealthCheckDue    NotificationType = "HEALTH_CHECK_DUE"
	NotificationEvaluationDue     NotificationType = "EVALUATION_DUE"
	NotificationInterviewDue      NotificationType = "INTERVIEW_DUE"
	NotificationSystem            NotificationType = "SYSTEM"
)

// NotificationPriority orders notifications by urgency
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "LOW"
	PriorityMedium NotificationPriority = "MEDIUM"
	PriorityHigh   NotificationPriority = "HIGH"
	PriorityUrgent NotificationPriority = "URGENT"
)
