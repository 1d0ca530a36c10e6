package rest

import (
	"context"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Principal, error)
}

type authUsecase interface {
	authenticator
	Login(ctx context.Context, args model.LoginArgs) (*model.LoginResponse, error)
	Me(ctx context.Context) (*model.User, error)
}

type personUsecase interface {
	CreatePerson(ctx context.Context, args model.CreatePersonArgs) (*model.Person, error)
	GetPerson(ctx context.Context, id string, includeDeleted bool) (*model.Person, error)
	UpdatePerson(ctx context.Context, id string, args model.UpdatePersonArgs) (*model.Person, error)
	ChangePersonStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.Person, error)
	DeletePerson(ctx context.Context, id string, actorID string) error
	ListPersons(ctx context.Context, filter model.PersonFilter) (*model.Page[*model.Person], error)
}

type companyUsecase interface {
	CreateCompany(ctx context.Context, args model.CreateCompanyArgs) (*model.Company, error)
	GetCompany(ctx context.Context, id string, includeDeleted bool) (*model.Company, error)
	UpdateCompany(ctx context.Context, id string, args model.UpdateCompanyArgs) (*model.Company, error)
	ChangeCompanyStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.Company, error)
	DeleteCompany(ctx context.Context, id string, actorID string) error
	ListCompanies(ctx context.Context, filter model.CompanyFilter) (*model.Page[*model.Company], error)
	UploadLogo(ctx context.Context, id string, file model.File) (*model.Company, error)
}

type userUsecase interface {
	CreateUser(ctx context.Context, args model.CreateUserArgs) (*model.User, error)
	GetUser(ctx context.Context, id string, includeDeleted bool) (*model.User, error)
	UpdateUser(ctx context.Context, id string, args model.UpdateUserArgs) (*model.User, error)
	ChangeUserStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.User, error)
	DeleteUser(ctx context.Context, id string, actorID string) error
	ListUsers(ctx context.Context, filter model.UserFilter) (*model.Page[*model.User], error)
}

type speakerUsecase interface {
	CreateSpeaker(ctx context.Context, args model.CreateSpeakerArgs) (*model.Speaker, error)
	GetSpeaker(ctx context.Context, id string, includeDeleted bool) (*model.Speaker, error)
	GetSpeakerDetails(ctx context.Context, id string, includeDeleted bool) (*model.SpeakerDetails, error)
	UpdateSpeaker(ctx context.Context, id string, args model.UpdateSpeakerArgs) (*model.Speaker, error)
	ChangeSpeakerStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.Speaker, error)
	DeleteSpeaker(ctx context.Context, id string, actorID string) error
	ListSpeakers(ctx context.Context, filter model.SpeakerFilter) (*model.Page[*model.Speaker], error)
}

type paymentMethodUsecase interface {
	CreatePaymentMethod(ctx context.Context, args model.CreatePaymentMethodArgs) (*model.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id string, includeDeleted bool) (*model.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id string, args model.UpdatePaymentMethodArgs) (*model.PaymentMethod, error)
	ChangePaymentMethodStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string, actorID string) error
	ListPaymentMethods(ctx context.Context, filter model.PaymentMethodFilter) (*model.Page[*model.PaymentMethod], error)
}

type auditUsecase interface {
	ListEvents(ctx context.Context, filter model.AuditFilter) (*model.Page[model.AuditEvent], error)
}

// HealthChecker reports whether the dependencies of the server are reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}
