package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// ResourceSpeaker is the resource name of speakers.
const ResourceSpeaker = "speaker"

var speakerQuery = query.Spec{
	Sortable: map[string]string{
		"createdAt":       model.FieldCreatedAt,
		"updatedAt":       model.FieldUpdatedAt,
		"yearsExperience": model.SpeakerYearsExperience,
		"hourlyRate":      model.SpeakerHourlyRate,
	},
	SearchFields: []string{model.SpeakerSpecialty, model.SpeakerBiography},
	DefaultLimit: 20,
}

// SpeakerServiceArgs contains the mandatory arguments for the SpeakerService.
type SpeakerServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.EntityStore[*model.Speaker]

	// Persons resolves the person behind a speaker.
	Persons personFinder

	// Companies resolves the company of a speaker.
	Companies companyFinder

	// Sender publishes lifecycle events. Optional.
	Sender ports.Sender

	// NowFunc overrides the clock. Optional.
	NowFunc func() time.Time
}

// NewSpeakerService creates a new SpeakerService.
func NewSpeakerService(args SpeakerServiceArgs) *SpeakerService {
	return &SpeakerService{
		persons:   args.Persons,
		companies: args.Companies,
		lifecycle: NewLifecycle(LifecycleArgs[*model.Speaker]{
			Resource: ResourceSpeaker,
			Store:    args.Repository,
			Sender:   args.Sender,
			Authorize: func(ctx context.Context, s *model.Speaker) error {
				return authorizeCompany(ctx, s.CompanyID)
			},
			Query:   speakerQuery,
			NowFunc: args.NowFunc,
		}),
	}
}

// SpeakerService gathers the functionality around the speaker-lifecycle.
type SpeakerService struct {
	lifecycle *Lifecycle[*model.Speaker]
	persons   personFinder
	companies companyFinder
}

// CreateSpeaker registers a person as a speaker of a company. Both must exist and not be deleted.
func (s *SpeakerService) CreateSpeaker(ctx context.Context, args model.CreateSpeakerArgs) (*model.Speaker, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	personID := strings.TrimSpace(args.PersonID)
	companyID := strings.TrimSpace(args.CompanyID)
	if err := authorizeCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if _, err := s.persons.GetPerson(ctx, personID, false); err != nil {
		return nil, err
	}
	if _, err := s.companies.GetCompany(ctx, companyID, false); err != nil {
		return nil, err
	}

	speaker := &model.Speaker{
		PersonID:        personID,
		CompanyID:       companyID,
		Specialty:       strings.TrimSpace(args.Specialty),
		Biography:       strings.TrimSpace(args.Biography),
		YearsExperience: args.YearsExperience,
		HourlyRate:      args.HourlyRate,
		Currency:        strings.ToUpper(strings.TrimSpace(args.Currency)),
	}
	if err := s.lifecycle.Create(ctx, speaker); err != nil {
		return nil, err
	}
	return speaker, nil
}

// GetSpeaker returns a speaker.
func (s *SpeakerService) GetSpeaker(ctx context.Context, id string, includeDeleted bool) (*model.Speaker, error) {
	return s.lifecycle.FindByID(ctx, id, includeDeleted)
}

// GetSpeakerDetails returns a speaker with its person and company. The references are resolved even
// when they were deleted after the speaker was registered.
func (s *SpeakerService) GetSpeakerDetails(ctx context.Context, id string, includeDeleted bool) (*model.SpeakerDetails, error) {
	speaker, err := s.lifecycle.FindByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	person, err := s.persons.GetPerson(ctx, speaker.PersonID, true)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.GetCompany(ctx, speaker.CompanyID, true)
	if err != nil {
		return nil, err
	}
	return &model.SpeakerDetails{Speaker: speaker, Person: person, Company: company}, nil
}

// UpdateSpeaker updates a speaker.
func (s *SpeakerService) UpdateSpeaker(ctx context.Context, id string, args model.UpdateSpeakerArgs) (*model.Speaker, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	return s.lifecycle.Update(ctx, id, args.Patch())
}

// ChangeSpeakerStatus moves a speaker to status.
func (s *SpeakerService) ChangeSpeakerStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.Speaker, error) {
	return s.lifecycle.ChangeStatus(ctx, id, status, actorID)
}

// DeleteSpeaker soft-deletes a speaker.
func (s *SpeakerService) DeleteSpeaker(ctx context.Context, id string, actorID string) error {
	return s.lifecycle.SoftDelete(ctx, id, actorID)
}

// ListSpeakers lists speakers matching the filter.
func (s *SpeakerService) ListSpeakers(ctx context.Context, filter model.SpeakerFilter) (*model.Page[*model.Speaker], error) {
	var clauses []model.Clause
	company, err := scopeCompany(ctx, strings.TrimSpace(filter.CompanyID))
	if err != nil {
		return nil, err
	}
	if company != "" {
		clauses = append(clauses, model.Eq(model.SpeakerCompanyID, company))
	}
	if p := strings.TrimSpace(filter.PersonID); p != "" {
		clauses = append(clauses, model.Eq(model.SpeakerPersonID, p))
	}
	if sp := strings.TrimSpace(filter.Specialty); sp != "" {
		clauses = append(clauses, model.Eq(model.SpeakerSpecialty, sp))
	}
	if filter.MinExperience != nil {
		clauses = append(clauses, model.Gte(model.SpeakerYearsExperience, *filter.MinExperience))
	}
	if filter.MaxExperience != nil {
		clauses = append(clauses, model.Lte(model.SpeakerYearsExperience, *filter.MaxExperience))
	}
	if filter.MinRate != nil {
		clauses = append(clauses, model.Gte(model.SpeakerHourlyRate, *filter.MinRate))
	}
	if filter.MaxRate != nil {
		clauses = append(clauses, model.Lte(model.SpeakerHourlyRate, *filter.MaxRate))
	}
	return s.lifecycle.List(ctx, filter.FilterRequest, clauses...)
}
