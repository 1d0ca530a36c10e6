package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxNameLength = 120
	maxTextLength = 2000
	minPassword   = 8
)

// CreatePersonArgs contain the arguments of the CreatePerson method.
type CreatePersonArgs struct {
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	DocumentType   DocumentType `json:"documentType"`
	DocumentNumber string       `json:"documentNumber"`
	Country        string       `json:"country"`
	BirthDate      *time.Time   `json:"birthDate"`
}

// Validate checks the arguments.
func (a *CreatePersonArgs) Validate() error {
	if err := requireText("firstName", a.FirstName, maxNameLength); err != nil {
		return err
	}
	if err := requireText("lastName", a.LastName, maxNameLength); err != nil {
		return err
	}
	if err := validateEmail("email", a.Email); err != nil {
		return err
	}
	if a.DocumentType != "" && !a.DocumentType.Valid() {
		return Invalid("documentType", "unknown document type")
	}
	if a.DocumentNumber != "" && a.DocumentType == "" {
		return Invalid("documentType", "required when documentNumber is set")
	}
	if err := validateCountry("country", a.Country); err != nil {
		return err
	}
	if a.BirthDate != nil && a.BirthDate.After(time.Now()) {
		return Invalid("birthDate", "must be in the past")
	}
	return nil
}

// UpdatePersonArgs contain the arguments of the UpdatePerson method. Nil fields are left untouched.
type UpdatePersonArgs struct {
	FirstName      *string       `json:"firstName"`
	LastName       *string       `json:"lastName"`
	Email          *string       `json:"email"`
	Phone          *string       `json:"phone"`
	DocumentType   *DocumentType `json:"documentType"`
	DocumentNumber *string       `json:"documentNumber"`
	Country        *string       `json:"country"`
	BirthDate      *time.Time    `json:"birthDate"`
}

// Validate checks the arguments.
func (a *UpdatePersonArgs) Validate() error {
	if a.FirstName != nil {
		if err := requireText("firstName", *a.FirstName, maxNameLength); err != nil {
			return err
		}
	}
	if a.LastName != nil {
		if err := requireText("lastName", *a.LastName, maxNameLength); err != nil {
			return err
		}
	}
	if a.Email != nil {
		if err := validateEmail("email", *a.Email); err != nil {
			return err
		}
	}
	if a.DocumentType != nil && !a.DocumentType.Valid() {
		return Invalid("documentType", "unknown document type")
	}
	if a.Country != nil {
		if err := validateCountry("country", *a.Country); err != nil {
			return err
		}
	}
	if a.BirthDate != nil && a.BirthDate.After(time.Now()) {
		return Invalid("birthDate", "must be in the past")
	}
	return nil
}

// Patch converts the arguments into attribute assignments.
func (a *UpdatePersonArgs) Patch() Patch {
	var p Patch
	if a.FirstName != nil {
		p = p.Set(PersonFirstName, strings.TrimSpace(*a.FirstName))
	}
	if a.LastName != nil {
		p = p.Set(PersonLastName, strings.TrimSpace(*a.LastName))
	}
	if a.Email != nil {
		p = p.Set(PersonEmail, NormalizeEmail(*a.Email))
	}
	if a.Phone != nil {
		p = p.Set(PersonPhone, strings.TrimSpace(*a.Phone))
	}
	if a.DocumentType != nil {
		p = p.Set(PersonDocumentType, string(*a.DocumentType))
	}
	if a.DocumentNumber != nil {
		p = p.Set(PersonDocumentNumber, strings.TrimSpace(*a.DocumentNumber))
	}
	if a.Country != nil {
		p = p.Set(PersonCountry, strings.ToUpper(strings.TrimSpace(*a.Country)))
	}
	if a.BirthDate != nil {
		p = p.Set(PersonBirthDate, a.BirthDate.UTC())
	}
	return p
}

// PersonFilter is the listing input for persons.
type PersonFilter struct {
	FilterRequest

	// Country restricts to a country. Zero-value will be ignored as filter.
	Country string

	// DocumentType restricts to a document type. Zero-value will be ignored as filter.
	DocumentType string
}

// CreateCompanyArgs contain the arguments of the CreateCompany method.
type CreateCompanyArgs struct {
	Name         string      `json:"name"`
	LegalName    string      `json:"legalName"`
	TaxID        string      `json:"taxId"`
	Type         CompanyType `json:"type"`
	ContactEmail string      `json:"contactEmail"`
	Phone        string      `json:"phone"`
	Website      string      `json:"website"`
	Country      string      `json:"country"`
}

// Validate checks the arguments.
func (a *CreateCompanyArgs) Validate() error {
	if err := requireText("name", a.Name, maxNameLength); err != nil {
		return err
	}
	if err := optionalText("legalName", a.LegalName, maxNameLength); err != nil {
		return err
	}
	if !a.Type.Valid() {
		return Invalid("type", "unknown company type")
	}
	if err := validateEmail("contactEmail", a.ContactEmail); err != nil {
		return err
	}
	if err := validateWebsite("website", a.Website); err != nil {
		return err
	}
	return validateCountry("country", a.Country)
}

// UpdateCompanyArgs contain the arguments of the UpdateCompany method. Nil fields are left untouched.
type UpdateCompanyArgs struct {
	Name         *string      `json:"name"`
	LegalName    *string      `json:"legalName"`
	TaxID        *string      `json:"taxId"`
	Type         *CompanyType `json:"type"`
	ContactEmail *string      `json:"contactEmail"`
	Phone        *string      `json:"phone"`
	Website      *string      `json:"website"`
	Country      *string      `json:"country"`
}

// Validate checks the arguments.
func (a *UpdateCompanyArgs) Validate() error {
	if a.Name != nil {
		if err := requireText("name", *a.Name, maxNameLength); err != nil {
			return err
		}
	}
	if a.LegalName != nil {
		if err := optionalText("legalName", *a.LegalName, maxNameLength); err != nil {
			return err
		}
	}
	if a.Type != nil && !a.Type.Valid() {
		return Invalid("type", "unknown company type")
	}
	if a.ContactEmail != nil {
		if err := validateEmail("contactEmail", *a.ContactEmail); err != nil {
			return err
		}
	}
	if a.Website != nil {
		if err := validateWebsite("website", *a.Website); err != nil {
			return err
		}
	}
	if a.Country != nil {
		return validateCountry("country", *a.Country)
	}
	return nil
}

// Patch converts the arguments into attribute assignments.
func (a *UpdateCompanyArgs) Patch() Patch {
	var p Patch
	if a.Name != nil {
		p = p.Set(CompanyName, strings.TrimSpace(*a.Name))
	}
	if a.LegalName != nil {
		p = p.Set(CompanyLegalName, strings.TrimSpace(*a.LegalName))
	}
	if a.TaxID != nil {
		p = p.Set(CompanyTaxID, strings.TrimSpace(*a.TaxID))
	}
	if a.Type != nil {
		p = p.Set(CompanyTypeField, string(*a.Type))
	}
	if a.ContactEmail != nil {
		p = p.Set(CompanyContactEmail, NormalizeEmail(*a.ContactEmail))
	}
	if a.Phone != nil {
		p = p.Set(CompanyPhone, strings.TrimSpace(*a.Phone))
	}
	if a.Website != nil {
		p = p.Set(CompanyWebsite, strings.TrimSpace(*a.Website))
	}
	if a.Country != nil {
		p = p.Set(CompanyCountry, strings.ToUpper(strings.TrimSpace(*a.Country)))
	}
	return p
}

// CompanyFilter is the listing input for companies.
type CompanyFilter struct {
	FilterRequest
	Type    string
	Country string
}

// CreateUserArgs contain the arguments of the CreateUser method.
type CreateUserArgs struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	PersonID  string `json:"personId"`
	CompanyID string `json:"companyId"`
}

// Validate checks the arguments.
func (a *CreateUserArgs) Validate() error {
	if err := validateEmail("email", a.Email); err != nil {
		return err
	}
	if err := validatePassword("password", a.Password); err != nil {
		return err
	}
	if !a.Role.Valid() {
		return Invalid("role", "unknown role")
	}
	if strings.TrimSpace(a.PersonID) == "" {
		return Invalid("personId", "is required")
	}
	if a.Role.CompanyScoped() && strings.TrimSpace(a.CompanyID) == "" {
		return Invalid("companyId", "is required for role "+string(a.Role))
	}
	return nil
}

// UpdateUserArgs contain the arguments of the UpdateUser method. Nil fields are left untouched.
type UpdateUserArgs struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *Role   `json:"role"`
	CompanyID *string `json:"companyId"`
}

// Validate checks the arguments.
func (a *UpdateUserArgs) Validate() error {
	if a.Email != nil {
		if err := validateEmail("email", *a.Email); err != nil {
			return err
		}
	}
	if a.Password != nil {
		if err := validatePassword("password", *a.Password); err != nil {
			return err
		}
	}
	if a.Role != nil && !a.Role.Valid() {
		return Invalid("role", "unknown role")
	}
	return nil
}

// UserFilter is the listing input for users.
type UserFilter struct {
	FilterRequest
	Role      string
	CompanyID string
	PersonID  string
}

// CreateSpeakerArgs contain the arguments of the CreateSpeaker method.
type CreateSpeakerArgs struct {
	PersonID        string  `json:"personId"`
	CompanyID       string  `json:"companyId"`
	Specialty       string  `json:"specialty"`
	Biography       string  `json:"biography"`
	YearsExperience int     `json:"yearsExperience"`
	HourlyRate      float64 `json:"hourlyRate"`
	Currency        string  `json:"currency"`
}

// Validate checks the arguments.
func (a *CreateSpeakerArgs) Validate() error {
	if strings.TrimSpace(a.PersonID) == "" {
		return Invalid("personId", "is required")
	}
	if strings.TrimSpace(a.CompanyID) == "" {
		return Invalid("companyId", "is required")
	}
	if err := requireText("specialty", a.Specialty, maxNameLength); err != nil {
		return err
	}
	if err := optionalText("biography", a.Biography, maxTextLength); err != nil {
		return err
	}
	if a.YearsExperience < 0 {
		return Invalid("yearsExperience", "must not be negative")
	}
	if a.HourlyRate < 0 {
		return Invalid("hourlyRate", "must not be negative")
	}
	return validateCurrency("currency", a.Currency)
}

// UpdateSpeakerArgs contain the arguments of the UpdateSpeaker method. Nil fields are left untouched.
type UpdateSpeakerArgs struct {
	Specialty       *string  `json:"specialty"`
	Biography       *string  `json:"biography"`
	YearsExperience *int     `json:"yearsExperience"`
	HourlyRate      *float64 `json:"hourlyRate"`
	Currency        *string  `json:"currency"`
}

// Validate checks the arguments.
func (a *UpdateSpeakerArgs) Validate() error {
	if a.Specialty != nil {
		if err := requireText("specialty", *a.Specialty, maxNameLength); err != nil {
			return err
		}
	}
	if a.Biography != nil {
		if err := optionalText("biography", *a.Biography, maxTextLength); err != nil {
			return err
		}
	}
	if a.YearsExperience != nil && *a.YearsExperience < 0 {
		return Invalid("yearsExperience", "must not be negative")
	}
	if a.HourlyRate != nil && *a.HourlyRate < 0 {
		return Invalid("hourlyRate", "must not be negative")
	}
	if a.Currency != nil {
		return validateCurrency("currency", *a.Currency)
	}
	return nil
}

// Patch converts the arguments into attribute assignments.
func (a *UpdateSpeakerArgs) Patch() Patch {
	var p Patch
	if a.Specialty != nil {
		p = p.Set(SpeakerSpecialty, strings.TrimSpace(*a.Specialty))
	}
	if a.Biography != nil {
		p = p.Set(SpeakerBiography, strings.TrimSpace(*a.Biography))
	}
	if a.YearsExperience != nil {
		p = p.Set(SpeakerYearsExperience, *a.YearsExperience)
	}
	if a.HourlyRate != nil {
		p = p.Set(SpeakerHourlyRate, *a.HourlyRate)
	}
	if a.Currency != nil {
		p = p.Set(SpeakerCurrency, strings.ToUpper(strings.TrimSpace(*a.Currency)))
	}
	return p
}

// SpeakerFilter is the listing input for speakers.
type SpeakerFilter struct {
	FilterRequest
	CompanyID     string
	PersonID      string
	Specialty     string
	MinExperience *int
	MaxExperience *int
	MinRate       *float64
	MaxRate       *float64
}

// CreatePaymentMethodArgs contain the arguments of the CreatePaymentMethod method.
type CreatePaymentMethodArgs struct {
	CompanyID     string            `json:"companyId"`
	Name          string            `json:"name"`
	Type          PaymentMethodType `json:"type"`
	Description   string            `json:"description"`
	AccountHolder string            `json:"accountHolder"`
	AccountNumber string            `json:"accountNumber"`
	Currency      string            `json:"currency"`
	Instructions  string            `json:"instructions"`
}

// Validate checks the arguments.
func (a *CreatePaymentMethodArgs) Validate() error {
	if strings.TrimSpace(a.CompanyID) == "" {
		return Invalid("companyId", "is required")
	}
	if err := requireText("name", a.Name, maxNameLength); err != nil {
		return err
	}
	if !a.Type.Valid() {
		return Invalid("type", "unknown payment method type")
	}
	if a.Type == PaymentBankTransfer && strings.TrimSpace(a.AccountNumber) == "" {
		return Invalid("accountNumber", "is required for bank transfers")
	}
	if err := optionalText("description", a.Description, maxTextLength); err != nil {
		return err
	}
	if err := optionalText("instructions", a.Instructions, maxTextLength); err != nil {
		return err
	}
	return validateCurrency("currency", a.Currency)
}

// UpdatePaymentMethodArgs contain the arguments of the UpdatePaymentMethod method. Nil fields are left untouched.
type UpdatePaymentMethodArgs struct {
	Name          *string            `json:"name"`
	Type          *PaymentMethodType `json:"type"`
	Description   *string            `json:"description"`
	AccountHolder *string            `json:"accountHolder"`
	AccountNumber *string            `json:"accountNumber"`
	Currency      *string            `json:"currency"`
	Instructions  *string            `json:"instructions"`
}

// Validate checks the arguments.
func (a *UpdatePaymentMethodArgs) Validate() error {
	if a.Name != nil {
		if err := requireText("name", *a.Name, maxNameLength); err != nil {
			return err
		}
	}
	if a.Type != nil && !a.Type.Valid() {
		return Invalid("type", "unknown payment method type")
	}
	if a.Description != nil {
		if err := optionalText("description", *a.Description, maxTextLength); err != nil {
			return err
		}
	}
	if a.Instructions != nil {
		if err := optionalText("instructions", *a.Instructions, maxTextLength); err != nil {
			return err
		}
	}
	if a.Currency != nil {
		return validateCurrency("currency", *a.Currency)
	}
	return nil
}

// Patch converts the arguments into attribute assignments.
func (a *UpdatePaymentMethodArgs) Patch() Patch {
	var p Patch
	if a.Name != nil {
		p = p.Set(PaymentMethodName, strings.TrimSpace(*a.Name))
	}
	if a.Type != nil {
		p = p.Set(PaymentMethodTypeField, string(*a.Type))
	}
	if a.Description != nil {
		p = p.Set(PaymentMethodDescription, strings.TrimSpace(*a.Description))
	}
	if a.AccountHolder != nil {
		p = p.Set(PaymentMethodAccountHolder, strings.TrimSpace(*a.AccountHolder))
	}
	if a.AccountNumber != nil {
		p = p.Set(PaymentMethodAccountNumber, strings.TrimSpace(*a.AccountNumber))
	}
	if a.Currency != nil {
		p = p.Set(PaymentMethodCurrency, strings.ToUpper(strings.TrimSpace(*a.Currency)))
	}
	if a.Instructions != nil {
		p = p.Set(PaymentMethodInstructions, strings.TrimSpace(*a.Instructions))
	}
	return p
}

// PaymentMethodFilter is the listing input for payment methods.
type PaymentMethodFilter struct {
	FilterRequest
	Type      string
	CompanyID string
	Currency  string
}

// LoginArgs contain the credentials of the Login method.
type LoginArgs struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the arguments.
func (a *LoginArgs) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return Invalid("email", "is required")
	}
	if a.Password == "" {
		return Invalid("password", "is required")
	}
	return nil
}

// LoginResponse contains the issued bearer token.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}

func requireText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, "is required")
	}
	return optionalText(field, value, max)
}

func optionalText(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return Invalid(field, "is too long")
	}
	return nil
}

func validateEmail(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return Invalid(field, "is required")
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return Invalid(field, "is not a valid email")
	}
	return nil
}

func validatePassword(field, value string) error {
	if utf8.RuneCountInString(value) < minPassword {
		return Invalid(field, "must have at least 8 characters")
	}
	return nil
}

func validateCountry(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if len(value) != 2 && len(value) != 3 {
		return Invalid(field, "must be an ISO country code")
	}
	return nil
}

func validateCurrency(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if len(value) != 3 {
		return Invalid(field, "must be an ISO currency code")
	}
	return nil
}

func validateWebsite(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return Invalid(field, "must be an http(s) URL")
	}
	return nil
}
