package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// ResourcePaymentMethod is the resource name of payment methods.
const ResourcePaymentMethod = "payment_method"

var paymentMethodQuery = query.Spec{
	Sortable: map[string]string{
		"createdAt": model.FieldCreatedAt,
		"updatedAt": model.FieldUpdatedAt,
		"name":      model.PaymentMethodName,
	},
	SearchFields: []string{model.PaymentMethodName, model.PaymentMethodDescription, model.PaymentMethodAccountHolder},
	DefaultLimit: 20,
}

// PaymentMethodServiceArgs contains the mandatory arguments for the PaymentMethodService.
type PaymentMethodServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.EntityStore[*model.PaymentMethod]

	// Companies resolves the owning company.
	Companies companyFinder

	// Sender publishes lifecycle events. Optional.
	Sender ports.Sender

	// NowFunc overrides the clock. Optional.
	NowFunc func() time.Time
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(args PaymentMethodServiceArgs) *PaymentMethodService {
	return &PaymentMethodService{
		companies: args.Companies,
		lifecycle: NewLifecycle(LifecycleArgs[*model.PaymentMethod]{
			Resource: ResourcePaymentMethod,
			Store:    args.Repository,
			Sender:   args.Sender,
			Authorize: func(ctx context.Context, pm *model.PaymentMethod) error {
				return authorizeCompany(ctx, pm.CompanyID)
			},
			Query:   paymentMethodQuery,
			NowFunc: args.NowFunc,
		}),
	}
}

// PaymentMethodService gathers the functionality around the payment-method lifecycle.
type PaymentMethodService struct {
	lifecycle *Lifecycle[*model.PaymentMethod]
	companies companyFinder
}

// CreatePaymentMethod creates a payment method for an existing company.
func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, args model.CreatePaymentMethodArgs) (*model.PaymentMethod, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	companyID := strings.TrimSpace(args.CompanyID)
	if err := authorizeCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if _, err := s.companies.GetCompany(ctx, companyID, false); err != nil {
		return nil, err
	}

	pm := &model.PaymentMethod{
		CompanyID:     companyID,
		Name:          strings.TrimSpace(args.Name),
		Type:          args.Type,
		Description:   strings.TrimSpace(args.Description),
		AccountHolder: strings.TrimSpace(args.AccountHolder),
		AccountNumber: strings.TrimSpace(args.AccountNumber),
		Currency:      strings.ToUpper(strings.TrimSpace(args.Currency)),
		Instructions:  strings.TrimSpace(args.Instructions),
	}
	if err := s.lifecycle.Create(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// GetPaymentMethod returns a payment method.
func (s *PaymentMethodService) GetPaymentMethod(ctx context.Context, id string, includeDeleted bool) (*model.PaymentMethod, error) {
	return s.lifecycle.FindByID(ctx, id, includeDeleted)
}

// UpdatePaymentMethod updates a payment method.
func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, id string, args model.UpdatePaymentMethodArgs) (*model.PaymentMethod, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	return s.lifecycle.Update(ctx, id, args.Patch())
}

// ChangePaymentMethodStatus moves a payment method to status.
func (s *PaymentMethodService) ChangePaymentMethodStatus(ctx context.Context, id string, status model.EntityStatus, actorID string) (*model.PaymentMethod, error) {
	return s.lifecycle.ChangeStatus(ctx, id, status, actorID)
}

// DeletePaymentMethod soft-deletes a payment method.
func (s *PaymentMethodService) DeletePaymentMethod(ctx context.Context, id string, actorID string) error {
	return s.lifecycle.SoftDelete(ctx, id, actorID)
}

// ListPaymentMethods lists payment methods matching the filter.
func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, filter model.PaymentMethodFilter) (*model.Page[*model.PaymentMethod], error) {
	var clauses []model.Clause
	if t := strings.TrimSpace(filter.Type); t != "" {
		clauses = append(clauses, model.Eq(model.PaymentMethodTypeField, strings.ToUpper(t)))
	}
	company, err := scopeCompany(ctx, strings.TrimSpace(filter.CompanyID))
	if err != nil {
		return nil, err
	}
	if company != "" {
		clauses = append(clauses, model.Eq(model.PaymentMethodCompanyID, company))
	}
	if cur := strings.TrimSpace(filter.Currency); cur != "" {
		clauses = append(clauses, model.Eq(model.PaymentMethodCurrency, strings.ToUpper(cur)))
	}
	return s.lifecycle.List(ctx, filter.FilterRequest, clauses...)
}
