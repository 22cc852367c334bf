package models

import "time"

// Trainee is a foreign trainee worker record. Trainees are never hard-deleted;
// deactivation sets IsActive to false.
type Trainee struct {
	ID               int64      `json:"id" db:"id"`
	TraineeCode      string     `json:"traineeCode" db:"trainee_code" example:"TR-2024-001"` // external trainee id
	FirstName        string     `json:"firstName" db:"first_name"`
	LastName         string     `json:"lastName" db:"last_name"`
	FirstNameKana    *string    `json:"firstNameKana,omitempty" db:"first_name_kana"`
	LastNameKana     *string    `json:"lastNameKana,omitempty" db:"last_name_kana"`
	Nationality      string     `json:"nationality" db:"nationality" example:"ベトナム"`
	PassportNumber   string     `json:"passportNumber" db:"passport_number"`
	VisaType         string     `json:"visaType" db:"visa_type"`
	VisaExpiryDate   time.Time  `json:"visaExpiryDate" db:"visa_expiry_date"`
	EntryDate        time.Time  `json:"entryDate" db:"entry_date"`
	DepartureDate    *time.Time `json:"departureDate,omitempty" db:"departure_date"`
	Department       string     `json:"department" db:"department" example:"製造部"`
	Position         *string    `json:"position,omitempty" db:"position"`
	PhoneNumber      *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	Email            *string    `json:"email,omitempty" db:"email"`
	Address          *string    `json:"address,omitempty" db:"address"`
	EmergencyContact *string    `json:"emergencyContact,omitempty" db:"emergency_contact"`
	EmergencyPhone   *string    `json:"emergencyPhone,omitempty" db:"emergency_phone"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// Ref returns the identity fields embedded in alerts and activity entries.
func (t *Trainee) Ref() TraineeRef {
	return TraineeRef{
		ID:          t.ID,
		TraineeCode: t.TraineeCode,
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		Department:  t.Department,
	}
}

// TraineeFilter narrows a trainee listing. Zero values mean "no filter".
type TraineeFilter struct {
	Search          string
	Nationality     string
	Department      string
	VisaExpiryUntil *time.Time
	SortBy          string
	SortOrder       string
}

// TraineeSummary is a trainee row in the listing with its most recent evaluation
type TraineeSummary struct {
	ID               int64             `json:"id"`
	TraineeCode      string            `json:"traineeCode"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Nationality      string            `json:"nationality"`
	Department       string            `json:"department"`
	VisaExpiryDate   time.Time         `json:"visaExpiryDate"`
	EntryDate        time.Time         `json:"entryDate"`
	IsActive         bool              `json:"isActive"`
	CreatedAt        time.Time         `json:"createdAt"`
	LatestEvaluation *LatestEvaluation `json:"latestEvaluation,omitempty"`
}

// LatestEvaluation summarizes the newest evaluation of a trainee
type LatestEvaluation struct {
	Level     int    `json:"level"`
	SkillName string `json:"skillName"`
}
