package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// ResourceCompany is the resource name of companies.
const ResourceCompany = "company"

// MaxLogoSize is the largest accepted logo upload.
const MaxLogoSize = 5 << 20

var companyQuery = query.Spec{
	Sortable: map[string]string{
		"createdAt": model.FieldCreatedAt,
		"updatedAt": model.FieldUpdatedAt,
		"name":      model.CompanyName,
	},
	SearchFields: []string{model.CompanyName, model.CompanyLegalName, model.CompanyTaxID, model.CompanyContactEmail},
	DefaultLimit: 10,
}

// CompanyServiceArgs contains the mandatory arguments for the CompanyService.
type CompanyServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.EntityStore[*model.Company]

	// Storage keeps company logos.
	Storage ports.ObjectStorage

	// Sender publishes lifecycle events. Optional.
	Sender ports.Sender

	// NowFunc overrides the clock. Optional.
	NowFunc func() time.Time
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(args CompanyServiceArgs) *CompanyService {
	return &CompanyService{
		storage: args.Storage,
		lifecycle: NewLifecycle(LifecycleArgs[*model.Company]{
			Resource:    ResourceCompany,
			Store:       args.Repository,
			Sender:      args.Sender,
			UniqueField: model.CompanyContactEmail,
			UniqueValue: func(c *model.Company) string { return c.ContactEmail },
			Authorize: func(ctx context.Context, c *model.Company) error {
				return authorizeCompany(ctx, c.ID)
			},
			Query:   companyQuery,
			NowFunc: args.NowFunc,
		}),
	}
}

// CompanyService gathers the functionality around the company (tenant) lifecycle.
type CompanyService struct {
	lifecycle *Lifecycle[*model.Company]
	storage   ports.ObjectStorage
}

// CreateCompany creates a company. It returns a model.ConflictError if a live company holds the contact email.
func (s *CompanyService) CreateCompany(ctx context.Context, args model.CreateCompanyArgs) (*model.Company, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	company := &model.Company{
		Name:         strings.TrimSpace(args.Name),
		LegalName:    strings.TrimSpace(args.LegalName),
		TaxID:        strings.TrimSpace(args.TaxID),
		Type:         args.Type,
		ContactEmail: model.NormalizeEmail(args.ContactEmail),
		Phone:        strings.TrimSpace(args.Phone),
		Website:      strings.TrimSpace(args.Website),
		Country:      strings.ToUpper(strings.TrimSpace(args.Country)),
	}
	if err := s.lifecycle.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany returns a company.
func (s *CompanyService) GetCompany(ctx context.Context, id string, includeDeleted bool) (*model.Company, error) {
	return s.lifecycle.FindByID(ctx, id, includeDeleted)
}

// UpdateCompany updates a company.
func (s *CompanyService) UpdateCompany(ctx context.Context, id string, args model.UpdateCompanyArgs) (*model.Company, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	return s.lifecycle.Update(ctx, id, args.Patch())
}

// ChangeCompanyStatus moves a company to status.
func (s *CompanyService) ChangeCompanyStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.Company, error) {
	return s.lifecycle.ChangeStatus(ctx, id, status, actorID)
}

// DeleteCompany soft-deletes a company.
func (s *CompanyService) DeleteCompany(ctx context.Context, id string, actorID string) error {
	return s.lifecycle.SoftDelete(ctx, id, actorID)
}

// ListCompanies lists companies matching the filter.
func (s *CompanyService) ListCompanies(ctx context.Context, filter model.CompanyFilter) (*model.Page[*model.Company], error) {
	var clauses []model.Clause
	if t := strings.TrimSpace(filter.Type); t != "" {
		clauses = append(clauses, model.Eq(model.CompanyTypeField, strings.ToUpper(t)))
	}
	if c := strings.TrimSpace(filter.Country); c != "" {
		clauses = append(clauses, model.Eq(model.CompanyCountry, strings.ToUpper(c)))
	}
	return s.lifecycle.List(ctx, filter.FilterRequest, clauses...)
}

// UploadLogo stores a new logo for the company and replaces the previous one. Removing the previous
// object is best-effort.
func (s *CompanyService) UploadLogo(ctx context.Context, id string, file model.File) (*model.Company, error) {
	if len(file.Data) == 0 {
		return nil, model.Invalid("file", "is required")
	}
	if len(file.Data) > MaxLogoSize {
		return nil, model.Invalid("file", "must not exceed 5 MiB")
	}
	if !strings.HasPrefix(file.MimeType, "image/") {
		return nil, model.Invalid("file", "must be an image")
	}

	company, err := s.lifecycle.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := authorizeCompany(ctx, company.ID); err != nil {
		return nil, err
	}
	previousKey := company.LogoKey

	object, err := s.storage.Upload(ctx, file.Data, file.Name, file.MimeType, model.UploadOptions{
		Folder:       fmt.Sprintf("companies/%s/logo", id),
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading logo of company [%s]: %w", id, err)
	}

	updated, err := s.lifecycle.Update(ctx, id, model.Patch{}.
		Set(model.CompanyLogoKey, object.Key).
		Set(model.CompanyLogoURL, object.URL))
	if err != nil {
		s.deleteObject(ctx, object.Key)
		return nil, err
	}

	if previousKey != "" {
		s.deleteObject(ctx, previousKey)
	}
	return updated, nil
}

func (s *CompanyService) deleteObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("object-key", key).Warn("could not delete stored object")
	}
}
