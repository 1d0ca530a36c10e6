package model

import "time"

// DocumentType is the kind of identity document of a person.
type DocumentType string

const (
	DocumentDNI         DocumentType = "DNI"
	DocumentPassport    DocumentType = "PASSPORT"
	DocumentForeignCard DocumentType = "FOREIGN_CARD"
	DocumentOther       DocumentType = "OTHER"
)

// Valid reports whether d is a known document type.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentDNI, DocumentPassport, DocumentForeignCard, DocumentOther:
		return true
	}
	return false
}

// Person is a natural person known to the platform. Users and speakers reference a person.
type Person struct {
	Base

	// FirstName is the person first name.
	FirstName string `json:"firstName"`

	// LastName is the person last name.
	LastName string `json:"lastName"`

	// Email is the contact email, stored normalized. Unique among non-deleted persons.
	Email string `json:"email"`

	// Phone is the contact phone.
	Phone string `json:"phone,omitempty"`

	// DocumentType is the kind of identity document.
	DocumentType DocumentType `json:"documentType,omitempty"`

	// DocumentNumber is the identity document number.
	DocumentNumber string `json:"documentNumber,omitempty"`

	// Country is the person country (ISO code).
	Country string `json:"country,omitempty"`

	// BirthDate is the date of birth, when known.
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

// FullName joins first and last name.
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Person attribute names.
const (
	PersonFirstName      = "first_name"
	PersonLastName       = "last_name"
	PersonEmail          = "email"
	PersonPhone          = "phone"
	PersonDocumentType   = "document_type"
	PersonDocumentNumber = "document_number"
	PersonCountry        = "country"
	PersonBirthDate      = "birth_date"
)
