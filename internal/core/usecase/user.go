package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// ResourceUser is the resource name of users.
const ResourceUser = "user"

var userQuery = query.Spec{
	Sortable: map[string]string{
		"createdAt":   model.FieldCreatedAt,
		"updatedAt":   model.FieldUpdatedAt,
		"email":       model.UserEmail,
		"lastLoginAt": model.UserLastLoginAt,
	},
	SearchFields: []string{model.UserEmail},
	DefaultLimit: 10,
}

type personFinder interface {
	GetPerson(ctx context.Context, id string, includeDeleted bool) (*model.Person, error)
}

type companyFinder interface {
	GetCompany(ctx context.Context, id string, includeDeleted bool) (*model.Company, error)
}

// UserServiceArgs contains the mandatory arguments for the UserService.
type UserServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.EntityStore[*model.User]

	// Persons resolves the person referenced by a user.
	Persons personFinder

	// Companies resolves the company referenced by a user.
	Companies companyFinder

	// Sender publishes lifecycle events. Optional.
	Sender ports.Sender

	// HashParams overrides the argon2id parameters. Optional.
	HashParams *argon2id.Params

	// NowFunc overrides the clock. Optional.
	NowFunc func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(args UserServiceArgs) *UserService {
	s := &UserService{
		store:      args.Repository,
		persons:    args.Persons,
		companies:  args.Companies,
		hashParams: args.HashParams,
		nowFunc:    args.NowFunc,
	}
	if s.hashParams == nil {
		s.hashParams = argon2id.DefaultParams
	}
	s.hash = func(password string) (string, error) {
		return argon2id.CreateHash(password, s.hashParams)
	}
	if s.nowFunc == nil {
		s.nowFunc = func() time.Time { return time.Now().UTC() }
	}
	s.lifecycle = NewLifecycle(LifecycleArgs[*model.User]{
		Resource:    ResourceUser,
		Store:       args.Repository,
		Sender:      args.Sender,
		UniqueField: model.UserEmail,
		UniqueValue: func(u *model.User) string { return u.Email },
		Authorize: func(ctx context.Context, u *model.User) error {
			return authorizeCompany(ctx, u.CompanyID)
		},
		Query:   userQuery,
		NowFunc: args.NowFunc,
	})
	return s
}

// UserService gathers the functionality around the user-lifecycle.
type UserService struct {
	lifecycle  *Lifecycle[*model.User]
	store      ports.EntityStore[*model.User]
	persons    personFinder
	companies  companyFinder
	hashParams *argon2id.Params
	hash       func(password string) (string, error)
	nowFunc    func() time.Time
}

// CreateUser creates a user. The referenced person (and company, when set) must exist.
func (s *UserService) CreateUser(ctx context.Context, args model.CreateUserArgs) (*model.User, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeRole(ctx, args.Role); err != nil {
		return nil, err
	}
	companyID := strings.TrimSpace(args.CompanyID)
	if p, ok := model.PrincipalFrom(ctx); ok && !p.IsPlatformAdmin() {
		if err := authorizeCompany(ctx, companyID); err != nil {
			return nil, err
		}
	}
	if err := s.checkReferences(ctx, strings.TrimSpace(args.PersonID), companyID); err != nil {
		return nil, err
	}

	// CreateHash returns a Argon2id hash of a plain-text password using the
	// provided algorithm parameters. The returned hash follows the format used
	// by the Argon2 reference C implementation and looks like this:
	// $argon2id$v=19$m=65536,t=3,p=2$c29tZXNhbHQ$RdescudvJCsgt3ub+b+dWRWJTmaaJObG
	hash, err := s.hash(args.Password)
	if err != nil {
		return nil, fmt.Errorf("error creating password hash: %w", err)
	}

	user := &model.User{
		Email:        model.NormalizeEmail(args.Email),
		PasswordHash: hash,
		Role:         args.Role,
		PersonID:     strings.TrimSpace(args.PersonID),
		CompanyID:    companyID,
	}
	if err := s.lifecycle.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns a user.
func (s *UserService) GetUser(ctx context.Context, id string, includeDeleted bool) (*model.User, error) {
	return s.lifecycle.FindByID(ctx, id, includeDeleted)
}

// UpdateUser updates a user. It returns a model.NotFoundError if the ID does not correspond to a live user.
func (s *UserService) UpdateUser(ctx context.Context, id string, args model.UpdateUserArgs) (*model.User, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	var patch model.Patch
	if args.Email != nil {
		patch = patch.Set(model.UserEmail, model.NormalizeEmail(*args.Email))
	}
	if args.Password != nil || args.Role != nil || args.CompanyID != nil {
		current, err := s.lifecycle.FindByID(ctx, id, false)
		if err != nil {
			return nil, err
		}
		if err := authorizeCompany(ctx, current.CompanyID); err != nil {
			return nil, err
		}
		role, companyID := current.Role, current.CompanyID
		if args.Role != nil {
			if err := authorizeRole(ctx, *args.Role); err != nil {
				return nil, err
			}
			role = *args.Role
			patch = patch.Set(model.UserRole, string(role))
		}
		if args.CompanyID != nil {
			companyID = strings.TrimSpace(*args.CompanyID)
			if err := authorizeCompany(ctx, companyID); err != nil {
				return nil, err
			}
			if companyID != "" {
				if _, err := s.companies.GetCompany(ctx, companyID, false); err != nil {
					return nil, err
				}
			}
			patch = patch.Set(model.UserCompanyID, companyID)
		}
		if role.CompanyScoped() && companyID == "" {
			return nil, model.Invalid("companyId", "is required for role "+string(role))
		}
	}
	// hashed last, once every check passed
	if args.Password != nil {
		hash, err := s.hash(*args.Password)
		if err != nil {
			return nil, fmt.Errorf("error creating password hash: %w", err)
		}
		patch = patch.Set(model.UserPasswordHash, hash)
	}
	return s.lifecycle.Update(ctx, id, patch)
}

// ChangeUserStatus moves a user to status.
func (s *UserService) ChangeUserStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.User, error) {
	return s.lifecycle.ChangeStatus(ctx, id, status, actorID)
}

// DeleteUser soft-deletes a user.
func (s *UserService) DeleteUser(ctx context.Context, id string, actorID string) error {
	return s.lifecycle.SoftDelete(ctx, id, actorID)
}

// ListUsers lists users matching the filter. Callers outside the platform administration only see
// the users of their own company.
func (s *UserService) ListUsers(ctx context.Context, filter model.UserFilter) (*model.Page[*model.User], error) {
	var clauses []model.Clause
	if r := strings.TrimSpace(filter.Role); r != "" {
		clauses = append(clauses, model.Eq(model.UserRole, strings.ToUpper(r)))
	}
	company, err := scopeCompany(ctx, strings.TrimSpace(filter.CompanyID))
	if err != nil {
		return nil, err
	}
	if company != "" {
		clauses = append(clauses, model.Eq(model.UserCompanyID, company))
	}
	if p := strings.TrimSpace(filter.PersonID); p != "" {
		clauses = append(clauses, model.Eq(model.UserPersonID, p))
	}
	return s.lifecycle.List(ctx, filter.FilterRequest, clauses...)
}

// findByEmail returns the live (ACTIVE or INACTIVE) user holding the email.
func (s *UserService) findByEmail(ctx context.Context, email string) (*model.User, error) {
	page, err := s.lifecycle.List(ctx, model.FilterRequest{Limit: 1}, model.Eq(model.UserEmail, model.NormalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, &model.NotFoundError{Resource: ResourceUser}
	}
	return page.Data[0], nil
}

// recordLogin stamps the last login time. It bypasses the lifecycle events on purpose: logins are not
// entity changes.
func (s *UserService) recordLogin(ctx context.Context, user *model.User) error {
	now := s.nowFunc()
	updated, err := s.store.Update(ctx, user.ID, model.Patch{}.Set(model.UserLastLoginAt, now))
	if err != nil {
		return fmt.Errorf("error recording login of user [%s]: %w", user.ID, err)
	}
	*user = *updated
	return nil
}

func (s *UserService) checkReferences(ctx context.Context, personID, companyID string) error {
	if _, err := s.persons.GetPerson(ctx, personID, false); err != nil {
		return err
	}
	if companyID == "" {
		return nil
	}
	_, err := s.companies.GetCompany(ctx, companyID, false)
	return err
}

// authorizeRole prevents non platform admins from granting the platform admin role.
func authorizeRole(ctx context.Context, role model.Role) error {
	p, ok := model.PrincipalFrom(ctx)
	if ok && !p.IsPlatformAdmin() && role == model.RolePlatformAdmin {
		return fmt.Errorf("role %s can only be granted by a platform admin: %w", role, model.ErrForbidden)
	}
	return nil
}
