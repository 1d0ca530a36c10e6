package model

// CompanyType classifies a tenant.
type CompanyType string

const (
	CompanyOrganizer CompanyType = "ORGANIZER"
	CompanySponsor   CompanyType = "SPONSOR"
	CompanyPartner   CompanyType = "PARTNER"
)

// Valid reports whether t is a known company type.
func (t CompanyType) Valid() bool {
	switch t {
	case CompanyOrganizer, CompanySponsor, CompanyPartner:
		return true
	}
	return false
}

// Company is a tenant of the platform.
type Company struct {
	Base

	// Name is the commercial name.
	Name string `json:"name"`

	// LegalName is the registered name.
	LegalName string `json:"legalName,omitempty"`

	// TaxID is the tax identification number.
	TaxID string `json:"taxId,omitempty"`

	// Type classifies the company.
	Type CompanyType `json:"type"`

	// ContactEmail is stored normalized and unique among non-deleted companies.
	ContactEmail string `json:"contactEmail"`

	// Phone is the contact phone.
	Phone string `json:"phone,omitempty"`

	// Website is the public site.
	Website string `json:"website,omitempty"`

	// Country is the company country (ISO code).
	Country string `json:"country,omitempty"`

	// LogoKey is the object-storage key of the logo. Server managed.
	LogoKey string `json:"-"`

	// LogoURL is the public URL of the logo. Server managed.
	LogoURL string `json:"logoUrl,omitempty"`
}

// Company attribute names.
const (
	CompanyName         = "name"
	CompanyLegalName    = "legal_name"
	CompanyTaxID        = "tax_id"
	CompanyTypeField    = "type"
	CompanyContactEmail = "contact_email"
	CompanyPhone        = "phone"
	CompanyWebsite      = "website"
	CompanyCountry      = "country"
	CompanyLogoKey      = "logo_key"
	CompanyLogoURL      = "logo_url"
)
