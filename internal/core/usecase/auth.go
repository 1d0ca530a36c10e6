package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
)

// AuthServiceArgs contains the mandatory arguments for the AuthService.
type AuthServiceArgs struct {
	Users   *UserService
	Persons *PersonService
	Tokens  ports.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(args AuthServiceArgs) *AuthService {
	return &AuthService{users: args.Users, persons: args.Persons, tokens: args.Tokens}
}

// AuthService authenticates users and issues bearer tokens.
type AuthService struct {
	users   *UserService
	persons *PersonService
	tokens  ports.TokenIssuer
}

// Login checks the credentials and issues a token. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, args model.LoginArgs) (*model.LoginResponse, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.findByEmail(ctx, args.Email)
	if err != nil {
		if model.IsNotFound(err) {
			return nil, model.ErrUnauthorized
		}
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(args.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error comparing password hash of user [%s]: %w", user.ID, err)
	}
	if !match {
		return nil, model.ErrUnauthorized
	}
	if user.EntityStatus != model.StatusActive {
		return nil, fmt.Errorf("user [%s] is %s: %w", user.ID, user.EntityStatus, model.ErrForbidden)
	}

	token, expiresAt, err := s.tokens.Issue(principalOf(user))
	if err != nil {
		return nil, fmt.Errorf("error issuing token for user [%s]: %w", user.ID, err)
	}
	if err := s.users.recordLogin(ctx, user); err != nil {
		log.WithError(err).WithField("user-id", user.ID).Warn("could not record login")
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Me returns the user behind the principal of the context.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	p, ok := model.PrincipalFrom(ctx)
	if !ok {
		return nil, model.ErrUnauthorized
	}
	user, err := s.users.GetUser(ctx, p.UserID, false)
	if err != nil {
		if model.IsNotFound(err) {
			return nil, model.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a bearer token and returns the principal of its user. The user is read back so
// that tokens of deleted or deactivated users stop working, and role or company changes apply at once.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Principal, error) {
	p, err := s.tokens.Verify(token)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	user, err := s.users.GetUser(ctx, p.UserID, false)
	if err != nil {
		if model.IsNotFound(err) {
			return model.Principal{}, fmt.Errorf("%w: user [%s] no longer exists", model.ErrUnauthorized, p.UserID)
		}
		return model.Principal{}, err
	}
	if user.EntityStatus != model.StatusActive {
		return model.Principal{}, fmt.Errorf("%w: user [%s] is %s", model.ErrUnauthorized, p.UserID, user.EntityStatus)
	}
	return principalOf(user), nil
}

// BootstrapAdminArgs describe the platform admin created on first start.
type BootstrapAdminArgs struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// EnsurePlatformAdmin creates the platform admin (and its person) unless a live user already holds the
// email. It is meant to be called once on startup with a trusted context.
func (s *AuthService) EnsurePlatformAdmin(ctx context.Context, args BootstrapAdminArgs) (*model.User, error) {
	user, err := s.users.findByEmail(ctx, args.Email)
	if err == nil {
		return user, nil
	}
	if !model.IsNotFound(err) {
		return nil, err
	}

	person, err := s.persons.findByEmail(ctx, args.Email)
	if err != nil {
		if !model.IsNotFound(err) {
			return nil, err
		}
		person, err = s.persons.CreatePerson(ctx, model.CreatePersonArgs{
			FirstName: defaultString(args.FirstName, "Platform"),
			LastName:  defaultString(args.LastName, "Admin"),
			Email:     args.Email,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating admin person: %w", err)
		}
	}

	user, err = s.users.CreateUser(ctx, model.CreateUserArgs{
		Email:    args.Email,
		Password: args.Password,
		Role:     model.RolePlatformAdmin,
		PersonID: person.ID,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return s.users.findByEmail(ctx, args.Email)
		}
		return nil, fmt.Errorf("error creating admin user: %w", err)
	}
	return user, nil
}

func principalOf(u *model.User) model.Principal {
	return model.Principal{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
