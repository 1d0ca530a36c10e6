package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// ResourcePerson is the resource name of persons.
const ResourcePerson = "person"

var personQuery = query.Spec{
	Sortable: map[string]string{
		"createdAt": model.FieldCreatedAt,
		"updatedAt": model.FieldUpdatedAt,
		"firstName": model.PersonFirstName,
		"lastName":  model.PersonLastName,
		"email":     model.PersonEmail,
	},
	SearchFields: []string{model.PersonFirstName, model.PersonLastName, model.PersonEmail, model.PersonDocumentNumber},
	DefaultLimit: 10,
}

// PersonServiceArgs contains the mandatory arguments for the PersonService.
type PersonServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.EntityStore[*model.Person]

	// Sender publishes lifecycle events. Optional.
	Sender ports.Sender

	// NowFunc overrides the clock. Optional.
	NowFunc func() time.Time
}

// NewPersonService creates a new PersonService.
func NewPersonService(args PersonServiceArgs) *PersonService {
	return &PersonService{lifecycle: NewLifecycle(LifecycleArgs[*model.Person]{
		Resource:    ResourcePerson,
		Store:       args.Repository,
		Sender:      args.Sender,
		UniqueField: model.PersonEmail,
		UniqueValue: func(p *model.Person) string { return p.Email },
		Query:       personQuery,
		NowFunc:     args.NowFunc,
	})}
}

// PersonService gathers the functionality around the person-lifecycle.
type PersonService struct {
	lifecycle *Lifecycle[*model.Person]
}

// CreatePerson creates a person. It returns a model.ConflictError if a live person holds the email.
func (s *PersonService) CreatePerson(ctx context.Context, args model.CreatePersonArgs) (*model.Person, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	person := &model.Person{
		FirstName:      strings.TrimSpace(args.FirstName),
		LastName:       strings.TrimSpace(args.LastName),
		Email:          model.NormalizeEmail(args.Email),
		Phone:          strings.TrimSpace(args.Phone),
		DocumentType:   args.DocumentType,
		DocumentNumber: strings.TrimSpace(args.DocumentNumber),
		Country:        strings.ToUpper(strings.TrimSpace(args.Country)),
	}
	if args.BirthDate != nil {
		bd := args.BirthDate.UTC()
		person.BirthDate = &bd
	}
	if err := s.lifecycle.Create(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// GetPerson returns a person.
func (s *PersonService) GetPerson(ctx context.Context, id string, includeDeleted bool) (*model.Person, error) {
	return s.lifecycle.FindByID(ctx, id, includeDeleted)
}

// UpdatePerson updates a person. It returns a model.NotFoundError if the person does not exist or is deleted.
func (s *PersonService) UpdatePerson(ctx context.Context, id string, args model.UpdatePersonArgs) (*model.Person, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	return s.lifecycle.Update(ctx, id, args.Patch())
}

// ChangePersonStatus moves a person to status.
func (s *PersonService) ChangePersonStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.Person, error) {
	return s.lifecycle.ChangeStatus(ctx, id, status, actorID)
}

// DeletePerson soft-deletes a person.
func (s *PersonService) DeletePerson(ctx context.Context, id string, actorID string) error {
	return s.lifecycle.SoftDelete(ctx, id, actorID)
}

// ListPersons lists persons matching the filter.
func (s *PersonService) ListPersons(ctx context.Context, filter model.PersonFilter) (*model.Page[*model.Person], error) {
	var clauses []model.Clause
	if c := strings.TrimSpace(filter.Country); c != "" {
		clauses = append(clauses, model.Eq(model.PersonCountry, strings.ToUpper(c)))
	}
	if dt := strings.TrimSpace(filter.DocumentType); dt != "" {
		clauses = append(clauses, model.Eq(model.PersonDocumentType, strings.ToUpper(dt)))
	}
	return s.lifecycle.List(ctx, filter.FilterRequest, clauses...)
}

// findByEmail returns the live person holding the email, if any.
func (s *PersonService) findByEmail(ctx context.Context, email string) (*model.Person, error) {
	page, err := s.lifecycle.List(ctx, model.FilterRequest{Limit: 1}, model.Eq(model.PersonEmail, model.NormalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, &model.NotFoundError{Resource: ResourcePerson}
	}
	return page.Data[0], nil
}
