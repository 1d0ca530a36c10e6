package rest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

var principals = map[string]model.Principal{
	"admin-token":   {UserID: "u-admin", Email: "root@lavc.test", Role: model.RolePlatformAdmin},
	"company-token": {UserID: "u-company", Email: "boss@acme.test", Role: model.RoleCompanyAdmin, CompanyID: "c-1"},
	"viewer-token":  {UserID: "u-viewer", Email: "guest@acme.test", Role: model.RoleViewer},
}

type MockAuth struct {
	loginArgs model.LoginArgs
	loginErr  error
}

func (m *MockAuth) Authenticate(_ context.Context, token string) (model.Principal, error) {
	p, ok := principals[token]
	if !ok {
		return model.Principal{}, fmt.Errorf("%w: unknown token", model.ErrUnauthorized)
	}
	return p, nil
}

func (m *MockAuth) Login(_ context.Context, args model.LoginArgs) (*model.LoginResponse, error) {
	m.loginArgs = args
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return &model.LoginResponse{AccessToken: "signed", TokenType: "Bearer"}, nil
}

func (m *MockAuth) Me(ctx context.Context) (*model.User, error) {
	p, ok := model.PrincipalFrom(ctx)
	if !ok {
		return nil, model.ErrUnauthorized
	}
	return &model.User{Base: model.Base{ID: p.UserID}, Email: p.Email, Role: p.Role}, nil
}

// MockPersons records the last call and answers with person or err.
type MockPersons struct {
	called         bool
	createArgs     model.CreatePersonArgs
	updateArgs     model.UpdatePersonArgs
	id             string
	includeDeleted bool
	status         model.EntityStatus
	actorID        string
	filter         model.PersonFilter
	ctxPrincipal   model.Principal

	person *model.Person
	err    error
}

func (m *MockPersons) record(ctx context.Context, id string) {
	m.called = true
	m.id = id
	m.ctxPrincipal, _ = model.PrincipalFrom(ctx)
}

func (m *MockPersons) CreatePerson(ctx context.Context, args model.CreatePersonArgs) (*model.Person, error) {
	m.record(ctx, "")
	m.createArgs = args
	return m.person, m.err
}

func (m *MockPersons) GetPerson(ctx context.Context, id string, includeDeleted bool) (*model.Person, error) {
	m.record(ctx, id)
	m.includeDeleted = includeDeleted
	return m.person, m.err
}

func (m *MockPersons) UpdatePerson(ctx context.Context, id string, args model.UpdatePersonArgs) (*model.Person, error) {
	m.record(ctx, id)
	m.updateArgs = args
	return m.person, m.err
}

func (m *MockPersons) ChangePersonStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.Person, error) {
	m.record(ctx, id)
	m.status = status
	m.actorID = actorID
	return m.person, m.err
}

func (m *MockPersons) DeletePerson(ctx context.Context, id string, actorID string) error {
	m.record(ctx, id)
	m.actorID = actorID
	return m.err
}

func (m *MockPersons) ListPersons(ctx context.Context, filter model.PersonFilter) (*model.Page[*model.Person], error) {
	m.record(ctx, "")
	m.filter = filter
	if m.err != nil {
		return nil, m.err
	}
	return model.NewPage([]*model.Person{}, 0, 1, 10), nil
}

// MockCompanies only serves the logo upload. The lifecycle routes are exercised through persons.
type MockCompanies struct {
	called bool
	id     string
	file   model.File
	err    error
}

func (m *MockCompanies) UploadLogo(_ context.Context, id string, file model.File) (*model.Company, error) {
	m.called = true
	m.id = id
	m.file = file
	if m.err != nil {
		return nil, m.err
	}
	return &model.Company{Base: model.Base{ID: id}, LogoURL: "https://cdn.test/logo.png"}, nil
}

type MockSpeakers struct {
	filter model.SpeakerFilter
}

func (m *MockSpeakers) ListSpeakers(_ context.Context, filter model.SpeakerFilter) (*model.Page[*model.Speaker], error) {
	m.filter = filter
	return model.NewPage[*model.Speaker](nil, 0, 1, 20), nil
}

func (m *MockSpeakers) GetSpeakerDetails(_ context.Context, id string, _ bool) (*model.SpeakerDetails, error) {
	return &model.SpeakerDetails{Speaker: &model.Speaker{Base: model.Base{ID: id}}}, nil
}

var errNotMocked = errors.New("not mocked")

func (m *MockCompanies) CreateCompany(context.Context, model.CreateCompanyArgs) (*model.Company, error) {
	return nil, errNotMocked
}

func (m *MockCompanies) GetCompany(context.Context, string, bool) (*model.Company, error) {
	return nil, errNotMocked
}

func (m *MockCompanies) UpdateCompany(context.Context, string, model.UpdateCompanyArgs) (*model.Company, error) {
	return nil, errNotMocked
}

func (m *MockCompanies) ChangeCompanyStatus(context.Context, string, model.EntityStatus, string) (*model.Company, error) {
	return nil, errNotMocked
}

func (m *MockCompanies) DeleteCompany(context.Context, string, string) error {
	return errNotMocked
}

func (m *MockCompanies) ListCompanies(context.Context, model.CompanyFilter) (*model.Page[*model.Company], error) {
	return nil, errNotMocked
}

func (m *MockSpeakers) CreateSpeaker(context.Context, model.CreateSpeakerArgs) (*model.Speaker, error) {
	return nil, errNotMocked
}

func (m *MockSpeakers) GetSpeaker(context.Context, string, bool) (*model.Speaker, error) {
	return nil, errNotMocked
}

func (m *MockSpeakers) UpdateSpeaker(context.Context, string, model.UpdateSpeakerArgs) (*model.Speaker, error) {
	return nil, errNotMocked
}

func (m *MockSpeakers) ChangeSpeakerStatus(context.Context, string, model.EntityStatus, string) (*model.Speaker, error) {
	return nil, errNotMocked
}

func (m *MockSpeakers) DeleteSpeaker(context.Context, string, string) error {
	return errNotMocked
}

type MockAudit struct {
	called bool
	filter model.AuditFilter
}

func (m *MockAudit) ListEvents(_ context.Context, filter model.AuditFilter) (*model.Page[model.AuditEvent], error) {
	m.called = true
	m.filter = filter
	return model.NewPage[model.AuditEvent](nil, 0, 1, 10), nil
}

type MockHealth struct {
	err error
}

func (m *MockHealth) Check(context.Context) error { return m.err }
