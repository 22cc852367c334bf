package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	TraineeRepository         *TraineeRepository
	CertificateRepository     *CertificateRepository
	HealthRecordRepository    *HealthRecordRepository
	SkillRepository           *SkillRepository
	EvaluationRepository      *EvaluationRepository
	InterviewRepository       *InterviewRepository
	OJTRecordRepository       *OJTRecordRepository
	DevelopmentPlanRepository *DevelopmentPlanRepository
	NotificationRepository    *NotificationRepository
	DashboardRepository       *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(db),
		TraineeRepository:         NewTraineeRepository(db),
		CertificateRepository:     NewCertificateRepository(db),
		HealthRecordRepository:    NewHealthRecordRepository(db),
		SkillRepository:           NewSkillRepository(db),
		EvaluationRepository:      NewEvaluationRepository(db),
		InterviewRepository:       NewInterviewRepository(db),
		OJTRecordRepository:       NewOJTRecordRepository(db),
		DevelopmentPlanRepository: NewDevelopmentPlanRepository(db),
		NotificationRepository:    NewNotificationRepository(db),
		DashboardRepository:       NewDashboardRepository(db),
	}
}
