package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func nowFunc() time.Time { return fixedNow }

// memStore is an in-memory ports.EntityStore. Attribute access goes through get/set so that the same
// store serves every resource.
type memStore[E model.Entity] struct {
	mu          sync.Mutex
	items       []E
	seq         int
	clone       func(E) E
	get         func(E, string) any
	set         func(E, string, any)
	uniqueField string

	lastQuery model.ListQuery
	listErr   error
	updateErr error
}

func (s *memStore[E]) Insert(_ context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uniqueField != "" && s.holds(s.uniqueField, fmt.Sprint(s.get(entity, s.uniqueField)), "") {
		return model.ErrConflict
	}
	s.seq++
	meta := entity.Meta()
	meta.ID = fmt.Sprintf("id-%d", s.seq)
	meta.CreatedAt = fixedNow.Add(time.Duration(s.seq) * time.Second)
	meta.UpdatedAt = meta.CreatedAt
	s.items = append(s.items, s.clone(entity))
	return nil
}

func (s *memStore[E]) FindByID(_ context.Context, id string, includeDeleted bool) (E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero E
	e, ok := s.find(id)
	if !ok || (!includeDeleted && e.Meta().IsDeleted()) {
		return zero, model.ErrNotFound
	}
	return s.clone(e), nil
}

func (s *memStore[E]) Exists(_ context.Context, q ports.UniqueQuery) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holds(q.Field, q.Value, q.ExcludeID), nil
}

func (s *memStore[E]) Update(_ context.Context, id string, patch model.Patch) (E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero E
	if s.updateErr != nil {
		return zero, s.updateErr
	}
	e, ok := s.find(id)
	if !ok || e.Meta().IsDeleted() {
		return zero, model.ErrNotFound
	}
	for _, f := range patch {
		s.set(e, f.Name, f.Value)
	}
	e.Meta().UpdatedAt = fixedNow.Add(time.Hour)
	return s.clone(e), nil
}

func (s *memStore[E]) ChangeStatus(_ context.Context, id string, change model.StatusChange) (E, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero E
	e, ok := s.find(id)
	if !ok {
		return zero, false, model.ErrNotFound
	}
	meta := e.Meta()
	if meta.EntityStatus == change.Status {
		return s.clone(e), false, nil
	}
	meta.EntityStatus = change.Status
	if change.Status == model.StatusDeleted {
		at := change.At
		meta.DeletedAt = &at
		meta.DeletedBy = change.ActorID
	} else {
		meta.DeletedAt = nil
		meta.DeletedBy = ""
	}
	meta.UpdatedAt = change.At
	return s.clone(e), true, nil
}

func (s *memStore[E]) List(_ context.Context, q model.ListQuery) ([]E, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = q
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	var matched []E
	for _, e := range s.items {
		if s.matches(e, q) {
			matched = append(matched, e)
		}
	}
	total := int64(len(matched))
	if q.SortOrder == model.Descending {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	var out []E
	for i := q.Skip; i < int64(len(matched)) && len(out) < q.Limit; i++ {
		out = append(out, s.clone(matched[i]))
	}
	return out, total, nil
}

func (s *memStore[E]) matches(e E, q model.ListQuery) bool {
	meta := e.Meta()
	if q.Status == nil && meta.IsDeleted() {
		return false
	}
	if q.Status != nil && meta.EntityStatus != *q.Status {
		return false
	}
	for _, c := range q.Clauses {
		v := s.get(e, c.Field)
		switch c.Op {
		case model.OpEq:
			if fmt.Sprint(v) != fmt.Sprint(c.Value) {
				return false
			}
		case model.OpGte:
			if toFloat(v) < toFloat(c.Value) {
				return false
			}
		case model.OpLte:
			if toFloat(v) > toFloat(c.Value) {
				return false
			}
		}
	}
	if q.Search != "" {
		found := false
		for _, f := range q.SearchFields {
			if strings.Contains(strings.ToLower(fmt.Sprint(s.get(e, f))), strings.ToLower(q.Search)) {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *memStore[E]) find(id string) (E, bool) {
	for _, e := range s.items {
		if e.Meta().ID == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}

func (s *memStore[E]) holds(field, value, excludeID string) bool {
	for _, e := range s.items {
		if e.Meta().IsDeleted() || e.Meta().ID == excludeID {
			continue
		}
		if fmt.Sprint(s.get(e, field)) == value {
			return true
		}
	}
	return false
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func newPersonStore() *memStore[*model.Person] {
	return &memStore[*model.Person]{
		uniqueField: model.PersonEmail,
		clone:       func(p *model.Person) *model.Person { c := *p; return &c },
		get: func(p *model.Person, field string) any {
			switch field {
			case model.PersonFirstName:
				return p.FirstName
			case model.PersonLastName:
				return p.LastName
			case model.PersonEmail:
				return p.Email
			case model.PersonCountry:
				return p.Country
			case model.PersonDocumentType:
				return string(p.DocumentType)
			case model.PersonDocumentNumber:
				return p.DocumentNumber
			}
			return nil
		},
		set: func(p *model.Person, field string, v any) {
			switch field {
			case model.PersonFirstName:
				p.FirstName = v.(string)
			case model.PersonLastName:
				p.LastName = v.(string)
			case model.PersonEmail:
				p.Email = v.(string)
			case model.PersonCountry:
				p.Country = v.(string)
			}
		},
	}
}

func newCompanyStore() *memStore[*model.Company] {
	return &memStore[*model.Company]{
		uniqueField: model.CompanyContactEmail,
		clone:       func(c *model.Company) *model.Company { cp := *c; return &cp },
		get: func(c *model.Company, field string) any {
			switch field {
			case model.CompanyName:
				return c.Name
			case model.CompanyContactEmail:
				return c.ContactEmail
			case model.CompanyTypeField:
				return string(c.Type)
			case model.CompanyCountry:
				return c.Country
			}
			return nil
		},
		set: func(c *model.Company, field string, v any) {
			switch field {
			case model.CompanyName:
				c.Name = v.(string)
			case model.CompanyContactEmail:
				c.ContactEmail = v.(string)
			case model.CompanyLogoKey:
				c.LogoKey = v.(string)
			case model.CompanyLogoURL:
				c.LogoURL = v.(string)
			}
		},
	}
}

func newUserStore() *memStore[*model.User] {
	return &memStore[*model.User]{
		uniqueField: model.UserEmail,
		clone:       func(u *model.User) *model.User { c := *u; return &c },
		get: func(u *model.User, field string) any {
			switch field {
			case model.UserEmail:
				return u.Email
			case model.UserRole:
				return string(u.Role)
			case model.UserCompanyID:
				return u.CompanyID
			case model.UserPersonID:
				return u.PersonID
			}
			return nil
		},
		set: func(u *model.User, field string, v any) {
			switch field {
			case model.UserEmail:
				u.Email = v.(string)
			case model.UserPasswordHash:
				u.PasswordHash = v.(string)
			case model.UserRole:
				u.Role = model.Role(v.(string))
			case model.UserCompanyID:
				u.CompanyID = v.(string)
			case model.UserLastLoginAt:
				t := v.(time.Time)
				u.LastLoginAt = &t
			}
		},
	}
}

func newSpeakerStore() *memStore[*model.Speaker] {
	return &memStore[*model.Speaker]{
		clone: func(s *model.Speaker) *model.Speaker { c := *s; return &c },
		get: func(s *model.Speaker, field string) any {
			switch field {
			case model.SpeakerCompanyID:
				return s.CompanyID
			case model.SpeakerPersonID:
				return s.PersonID
			case model.SpeakerSpecialty:
				return s.Specialty
			case model.SpeakerBiography:
				return s.Biography
			case model.SpeakerYearsExperience:
				return s.YearsExperience
			case model.SpeakerHourlyRate:
				return s.HourlyRate
			}
			return nil
		},
		set: func(s *model.Speaker, field string, v any) {
			switch field {
			case model.SpeakerSpecialty:
				s.Specialty = v.(string)
			case model.SpeakerYearsExperience:
				s.YearsExperience = v.(int)
			}
		},
	}
}

func newPaymentMethodStore() *memStore[*model.PaymentMethod] {
	return &memStore[*model.PaymentMethod]{
		clone: func(pm *model.PaymentMethod) *model.PaymentMethod { c := *pm; return &c },
		get: func(pm *model.PaymentMethod, field string) any {
			switch field {
			case model.PaymentMethodCompanyID:
				return pm.CompanyID
			case model.PaymentMethodName:
				return pm.Name
			case model.PaymentMethodTypeField:
				return string(pm.Type)
			case model.PaymentMethodCurrency:
				return pm.Currency
			}
			return nil
		},
		set: func(pm *model.PaymentMethod, field string, v any) {
			switch field {
			case model.PaymentMethodName:
				pm.Name = v.(string)
			}
		},
	}
}

// MockSender is a mock implementation of the Sender interface.
type MockSender struct {
	mu        sync.Mutex
	events    []model.LifecycleEvent
	SendError error
}

func (m *MockSender) Send(_ context.Context, event model.LifecycleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.SendError
}

func (m *MockSender) types() []model.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

// MockStorage is a mock implementation of the ObjectStorage interface.
type MockStorage struct {
	uploads     int
	deleted     []string
	UploadError error
	DeleteError error
}

func (m *MockStorage) Upload(_ context.Context, _ []byte, name, _ string, opts model.UploadOptions) (*model.StoredObject, error) {
	if m.UploadError != nil {
		return nil, m.UploadError
	}
	m.uploads++
	key := fmt.Sprintf("%s/%d-%s", opts.Folder, m.uploads, name)
	return &model.StoredObject{Key: key, URL: "https://storage.test/" + key}, nil
}

func (m *MockStorage) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return m.DeleteError
}

// MockTokens is a mock implementation of the TokenIssuer interface.
type MockTokens struct {
	issued []model.Principal
}

func (m *MockTokens) Issue(p model.Principal) (string, time.Time, error) {
	m.issued = append(m.issued, p)
	return "token-" + p.UserID, fixedNow.Add(time.Hour), nil
}

func (m *MockTokens) Verify(token string) (model.Principal, error) {
	for _, p := range m.issued {
		if "token-"+p.UserID == token {
			return p, nil
		}
	}
	return model.Principal{}, fmt.Errorf("unknown token")
}

func adminCtx() context.Context {
	return model.WithPrincipal(context.Background(), model.Principal{UserID: "admin", Role: model.RolePlatformAdmin})
}

func viewerCtx(companyID string) context.Context {
	return model.WithPrincipal(context.Background(), model.Principal{UserID: "viewer", Role: model.RoleViewer, CompanyID: companyID})
}

func companyAdminCtx(companyID string) context.Context {
	return model.WithPrincipal(context.Background(), model.Principal{UserID: "cadmin", Role: model.RoleCompanyAdmin, CompanyID: companyID})
}
