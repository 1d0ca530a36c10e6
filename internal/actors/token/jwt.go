package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// Issuer is the HS256 bearer token issuer. It implements ports.TokenIssuer.
type Issuer struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	nowFunc func() time.Time
}

// IssuerArgs are the mandatory arguments of an Issuer.
type IssuerArgs struct {
	// Secret is the HMAC signing key.
	Secret string

	// Issuer is the iss claim of the issued tokens.
	Issuer string

	// TTL is the validity of the issued tokens.
	TTL time.Duration
}

// IssuerOptArgs are the optional arguments of an Issuer.
type IssuerOptArgs = func(*Issuer)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) IssuerOptArgs {
	return func(i *Issuer) {
		i.nowFunc = nowFunc
	}
}

// NewIssuer creates a new Issuer.
func NewIssuer(args IssuerArgs, optArgs ...IssuerOptArgs) (*Issuer, error) {
	if len(args.Secret) < 16 {
		return nil, errors.New("token secret must be at least 16 bytes long")
	}
	if args.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	i := &Issuer{
		secret:  []byte(args.Secret),
		issuer:  args.Issuer,
		ttl:     args.TTL,
		nowFunc: time.Now,
	}
	for _, opt := range optArgs {
		opt(i)
	}
	return i, nil
}

type claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
}

// Issue signs a token for the principal.
func (i *Issuer) Issue(principal model.Principal) (string, time.Time, error) {
	now := i.nowFunc()
	expiresAt := now.Add(i.ttl).Truncate(time.Second)
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    principal.UserID,
		Email:     principal.Email,
		Role:      string(principal.Role),
		CompanyID: principal.CompanyID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token. Every failure wraps model.ErrUnauthorized.
func (i *Issuer) Verify(token string) (model.Principal, error) {
	var c claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.nowFunc),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	role := model.Role(c.Role)
	if c.UserID == "" || !role.Valid() {
		return model.Principal{}, fmt.Errorf("%w: incomplete token claims", model.ErrUnauthorized)
	}
	return model.Principal{
		UserID:    c.UserID,
		Email:     c.Email,
		Role:      role,
		CompanyID: c.CompanyID,
	}, nil
}
