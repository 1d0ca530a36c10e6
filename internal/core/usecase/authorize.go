package usecase

import (
	"context"
	"fmt"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// authorizeCompany restricts writes on company-owned data to the platform admins and to the users of
// that company. Calls without a principal (workers, bootstrap) are trusted.
func authorizeCompany(ctx context.Context, companyID string) error {
	p, ok := model.PrincipalFrom(ctx)
	if !ok || p.IsPlatformAdmin() {
		return nil
	}
	if p.CompanyID == "" || p.CompanyID != companyID {
		return fmt.Errorf("company [%s] is not managed by user [%s]: %w", companyID, p.UserID, model.ErrForbidden)
	}
	return nil
}

// scopeCompany returns the company a listing must be restricted to for the caller. Platform admins
// (and trusted calls) keep the requested company. Other callers are forced to their own company and
// may not list company-owned data at all without one.
func scopeCompany(ctx context.Context, requested string) (string, error) {
	p, ok := model.PrincipalFrom(ctx)
	if !ok || p.IsPlatformAdmin() {
		return requested, nil
	}
	if p.CompanyID == "" {
		return "", fmt.Errorf("user [%s] does not belong to a company: %w", p.UserID, model.ErrForbidden)
	}
	return p.CompanyID, nil
}
