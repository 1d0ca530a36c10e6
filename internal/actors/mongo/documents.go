package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// baseDB holds the lifecycle fields shared by every document.
type baseDB struct {
	// ID unique identifier of the entity.
	ID primitive.ObjectID `bson:"_id"`

	// EntityStatus is ACTIVE, INACTIVE or DELETED.
	EntityStatus string `bson:"entity_status"`

	// DeletedAt is the time at which the entity was deleted. Absent unless DELETED.
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`

	// DeletedBy is the user that deleted the entity.
	DeletedBy string `bson:"deleted_by,omitempty"`

	// CreatedAt is the time at which the entity was created in the system.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time at which the entity was last updated
	UpdatedAt time.Time `bson:"updated_at"`
}

func (b baseDB) toModel() model.Base {
	return model.Base{
		ID:           b.ID.Hex(),
		EntityStatus: model.EntityStatus(b.EntityStatus),
		DeletedAt:    b.DeletedAt,
		DeletedBy:    b.DeletedBy,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toBaseDB(id primitive.ObjectID, b *model.Base) baseDB {
	return baseDB{
		ID:           id,
		EntityStatus: string(b.EntityStatus),
		DeletedAt:    b.DeletedAt,
		DeletedBy:    b.DeletedBy,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// decoder builds a raw-document decoder through the document type D.
func decoder[D any, E model.Entity](toModel func(*D) E) func(bson.Raw) (E, error) {
	return func(raw bson.Raw) (E, error) {
		doc := new(D)
		if err := bson.Unmarshal(raw, doc); err != nil {
			var zero E
			return zero, err
		}
		return toModel(doc), nil
	}
}

type personDB struct {
	Base baseDB `bson:",inline"`

	FirstName      string     `bson:"first_name"`
	LastName       string     `bson:"last_name"`
	Email          string     `bson:"email"`
	Phone          string     `bson:"phone,omitempty"`
	DocumentType   string     `bson:"document_type,omitempty"`
	DocumentNumber string     `bson:"document_number,omitempty"`
	Country        string     `bson:"country,omitempty"`
	BirthDate      *time.Time `bson:"birth_date,omitempty"`
}

func encodePerson(base baseDB, p *model.Person) any {
	return &personDB{
		Base:           base,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		DocumentType:   string(p.DocumentType),
		DocumentNumber: p.DocumentNumber,
		Country:        p.Country,
		BirthDate:      p.BirthDate,
	}
}

func (d *personDB) toModel() *model.Person {
	return &model.Person{
		Base:           d.Base.toModel(),
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Phone:          d.Phone,
		DocumentType:   model.DocumentType(d.DocumentType),
		DocumentNumber: d.DocumentNumber,
		Country:        d.Country,
		BirthDate:      d.BirthDate,
	}
}

type companyDB struct {
	Base baseDB `bson:",inline"`

	Name         string `bson:"name"`
	LegalName    string `bson:"legal_name,omitempty"`
	TaxID        string `bson:"tax_id,omitempty"`
	Type         string `bson:"type"`
	ContactEmail string `bson:"contact_email"`
	Phone        string `bson:"phone,omitempty"`
	Website      string `bson:"website,omitempty"`
	Country      string `bson:"country,omitempty"`
	LogoKey      string `bson:"logo_key,omitempty"`
	LogoURL      string `bson:"logo_url,omitempty"`
}

func encodeCompany(base baseDB, c *model.Company) any {
	return &companyDB{
		Base:         base,
		Name:         c.Name,
		LegalName:    c.LegalName,
		TaxID:        c.TaxID,
		Type:         string(c.Type),
		ContactEmail: c.ContactEmail,
		Phone:        c.Phone,
		Website:      c.Website,
		Country:      c.Country,
		LogoKey:      c.LogoKey,
		LogoURL:      c.LogoURL,
	}
}

func (d *companyDB) toModel() *model.Company {
	return &model.Company{
		Base:         d.Base.toModel(),
		Name:         d.Name,
		LegalName:    d.LegalName,
		TaxID:        d.TaxID,
		Type:         model.CompanyType(d.Type),
		ContactEmail: d.ContactEmail,
		Phone:        d.Phone,
		Website:      d.Website,
		Country:      d.Country,
		LogoKey:      d.LogoKey,
		LogoURL:      d.LogoURL,
	}
}

type userDB struct {
	Base baseDB `bson:",inline"`

	// Email is the user email
	Email string `bson:"email"`

	// PasswordHash contains the password hash.
	PasswordHash string `bson:"password_hash"`

	Role        string     `bson:"role"`
	PersonID    string     `bson:"person_id"`
	CompanyID   string     `bson:"company_id,omitempty"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty"`
}

func encodeUser(base baseDB, u *model.User) any {
	return &userDB{
		Base:         base,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		PersonID:     u.PersonID,
		CompanyID:    u.CompanyID,
		LastLoginAt:  u.LastLoginAt,
	}
}

func (d *userDB) toModel() *model.User {
	return &model.User{
		Base:         d.Base.toModel(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         model.Role(d.Role),
		PersonID:     d.PersonID,
		CompanyID:    d.CompanyID,
		LastLoginAt:  d.LastLoginAt,
	}
}

type speakerDB struct {
	Base baseDB `bson:",inline"`

	PersonID        string  `bson:"person_id"`
	CompanyID       string  `bson:"company_id"`
	Specialty       string  `bson:"specialty"`
	Biography       string  `bson:"biography,omitempty"`
	YearsExperience int     `bson:"years_experience"`
	HourlyRate      float64 `bson:"hourly_rate"`
	Currency        string  `bson:"currency,omitempty"`
}

func encodeSpeaker(base baseDB, s *model.Speaker) any {
	return &speakerDB{
		Base:            base,
		PersonID:        s.PersonID,
		CompanyID:       s.CompanyID,
		Specialty:       s.Specialty,
		Biography:       s.Biography,
		YearsExperience: s.YearsExperience,
		HourlyRate:      s.HourlyRate,
		Currency:        s.Currency,
	}
}

func (d *speakerDB) toModel() *model.Speaker {
	return &model.Speaker{
		Base:            d.Base.toModel(),
		PersonID:        d.PersonID,
		CompanyID:       d.CompanyID,
		Specialty:       d.Specialty,
		Biography:       d.Biography,
		YearsExperience: d.YearsExperience,
		HourlyRate:      d.HourlyRate,
		Currency:        d.Currency,
	}
}

type paymentMethodDB struct {
	Base baseDB `bson:",inline"`

	CompanyID     string `bson:"company_id"`
	Name          string `bson:"name"`
	Type          string `bson:"type"`
	Description   string `bson:"description,omitempty"`
	AccountHolder string `bson:"account_holder,omitempty"`
	AccountNumber string `bson:"account_number,omitempty"`
	Currency      string `bson:"currency,omitempty"`
	Instructions  string `bson:"instructions,omitempty"`
}

func encodePaymentMethod(base baseDB, pm *model.PaymentMethod) any {
	return &paymentMethodDB{
		Base:          base,
		CompanyID:     pm.CompanyID,
		Name:          pm.Name,
		Type:          string(pm.Type),
		Description:   pm.Description,
		AccountHolder: pm.AccountHolder,
		AccountNumber: pm.AccountNumber,
		Currency:      pm.Currency,
		Instructions:  pm.Instructions,
	}
}

func (d *paymentMethodDB) toModel() *model.PaymentMethod {
	return &model.PaymentMethod{
		Base:          d.Base.toModel(),
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		Type:          model.PaymentMethodType(d.Type),
		Description:   d.Description,
		AccountHolder: d.AccountHolder,
		AccountNumber: d.AccountNumber,
		Currency:      d.Currency,
		Instructions:  d.Instructions,
	}
}
