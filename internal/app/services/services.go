// Package services holds the business logic behind the HTTP controllers.
//
// Services defined in this package:
//   - AuthService: login, registration and profile management
//   - UserService: user administration
//   - TraineeService: trainee records, detail aggregation and CSV export
//   - CertificateService, TraineeRecordService, EvaluationService, InterviewService,
//     DevelopmentPlanService, SkillService: per-trainee records
//   - DashboardService: alerts, statistics and recent activity
//   - NotificationService: persisted alerts and the periodic alert scan
package services
