package model

// Speaker is the speaking profile of a person within a company.
type Speaker struct {
	Base

	// PersonID references the person.
	PersonID string `json:"personId"`

	// CompanyID references the company the speaker is registered with.
	CompanyID string `json:"companyId"`

	// Specialty is the main topic of the speaker.
	Specialty string `json:"specialty"`

	// Biography is a free-text presentation.
	Biography string `json:"biography,omitempty"`

	// YearsExperience is the number of years of speaking experience.
	YearsExperience int `json:"yearsExperience"`

	// HourlyRate is the rate charged per hour, in Currency.
	HourlyRate float64 `json:"hourlyRate"`

	// Currency is the ISO currency of HourlyRate.
	Currency string `json:"currency,omitempty"`
}

// SpeakerDetails is a speaker with its references resolved.
type SpeakerDetails struct {
	Speaker *Speaker `json:"speaker"`
	Person  *Person  `json:"person"`
	Company *Company `json:"company"`
}

// Speaker attribute names.
const (
	SpeakerPersonID        = "person_id"
	SpeakerCompanyID       = "company_id"
	SpeakerSpecialty       = "specialty"
	SpeakerBiography       = "biography"
	SpeakerYearsExperience = "years_experience"
	SpeakerHourlyRate      = "hourly_rate"
	SpeakerCurrency        = "currency"
)
