package ports

import (
	"time"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	// Issue signs a token for the principal and returns it with its expiry.
	Issue(principal model.Principal) (token string, expiresAt time.Time, err error)

	// Verify parses a token and returns the principal it was issued for.
	Verify(token string) (model.Principal, error)
}
