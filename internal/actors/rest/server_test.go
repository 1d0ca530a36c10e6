package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	auth      *MockAuth
	persons   *MockPersons
	companies *MockCompanies
	speakers  *MockSpeakers
	audit     *MockAudit
	health    *MockHealth
	server    *Server
}

func newFixture() *fixture {
	f := &fixture{
		auth:      &MockAuth{},
		persons:   &MockPersons{person: &model.Person{Base: model.Base{ID: "p-1", EntityStatus: model.StatusActive}}},
		companies: &MockCompanies{},
		speakers:  &MockSpeakers{},
		audit:     &MockAudit{},
		health:    &MockHealth{},
	}
	f.server = NewServer(ServerArgs{
		Auth:      f.auth,
		Persons:   f.persons,
		Companies: f.companies,
		Speakers:  f.speakers,
		Audit:     f.audit,
	}, WithHealthChecker(f.health), WithCORSOrigins([]string{"http://localhost:3000"}))
	return f
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, BasePath+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Healthz(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.health.err = errors.New("mongo unreachable")
	rec = f.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Authentication(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic admin-token", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer viewer-token", wantStatus: http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()
			req := httptest.NewRequest(http.MethodGet, BasePath+"/auth/me", nil)
			req.Header.Set("X-Request-ID", "req-42")
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			rec := httptest.NewRecorder()
			f.server.Handler().ServeHTTP(rec, req)

			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
			if test.wantStatus == http.StatusUnauthorized {
				body := decodeError(t, rec)
				assert.Equal(t, CodeUnauthorized, body.Error.Code)
				assert.Equal(t, "req-42", body.RequestID)
			}
		})
	}
}

func TestServer_Login(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodPost, "/auth/login", "", `{"email":"ana@acme.test","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@acme.test", f.auth.loginArgs.Email)

	f.auth.loginErr = model.ErrUnauthorized
	rec = f.do(http.MethodPost, "/auth/login", "", `{"email":"ana@acme.test","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "validation",
			err:         model.Invalid("email", "must be a valid email address"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeValidationFailed,
			wantMessage: "email: must be a valid email address",
		},
		{
			name:        "not found",
			err:         &model.NotFoundError{Resource: "person", ID: "p-1"},
			wantStatus:  http.StatusNotFound,
			wantCode:    CodeNotFound,
			wantMessage: "person [p-1] not found",
		},
		{
			name:        "conflict",
			err:         &model.ConflictError{Resource: "person", Field: "email", Value: "a@b.test"},
			wantStatus:  http.StatusConflict,
			wantCode:    CodeConflict,
			wantMessage: "person with email [a@b.test] already exists",
		},
		{
			name:        "forbidden",
			err:         model.ErrForbidden,
			wantStatus:  http.StatusForbidden,
			wantCode:    CodeForbidden,
			wantMessage: "insufficient permissions",
		},
		{
			name:        "internal errors are hidden",
			err:         errors.New("connection reset by peer"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    CodeInternalError,
			wantMessage: "internal server error",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()
			f.persons.err = test.err

			rec := f.do(http.MethodGet, "/persons/p-1", "viewer-token", "")

			assert.Equal(t, test.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, test.wantCode, body.Error.Code)
			assert.Equal(t, test.wantMessage, body.Error.Message)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestServer_CreatePerson(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		body        string
		wantStatus  int
		wantCalled  bool
		wantErrCode string
	}{
		{
			name:       "created",
			token:      "company-token",
			body:       `{"firstName":"Ana","lastName":"Diaz","email":"ana@acme.test"}`,
			wantStatus: http.StatusCreated,
			wantCalled: true,
		},
		{
			name:        "viewer cannot write",
			token:       "viewer-token",
			body:        `{"firstName":"Ana"}`,
			wantStatus:  http.StatusForbidden,
			wantErrCode: CodeForbidden,
		},
		{
			name:        "managed status key",
			token:       "admin-token",
			body:        `{"firstName":"Ana","entityStatus":"DELETED"}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: CodeValidationFailed,
		},
		{
			name:        "managed timestamp key",
			token:       "admin-token",
			body:        `{"firstName":"Ana","createdAt":"2020-01-01T00:00:00Z"}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: CodeValidationFailed,
		},
		{
			name:        "unknown key",
			token:       "admin-token",
			body:        `{"firstName":"Ana","nickname":"an"}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: CodeValidationFailed,
		},
		{
			name:        "not an object",
			token:       "admin-token",
			body:        `["Ana"]`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: CodeValidationFailed,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()
			rec := f.do(http.MethodPost, "/persons", test.token, test.body)

			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, test.wantCalled, f.persons.called)
			if test.wantCalled {
				assert.Equal(t, "Ana", f.persons.createArgs.FirstName)
				assert.Equal(t, "u-company", f.persons.ctxPrincipal.UserID, "the principal flows into the usecase")
			}
			if test.wantErrCode != "" {
				assert.Equal(t, test.wantErrCode, decodeError(t, rec).Error.Code)
			}
		})
	}
}

func TestServer_ChangeStatus(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		body       string
		wantStatus int
		wantCalled bool
		want       model.EntityStatus
		wantActor  string
	}{
		{
			name:       "deactivate",
			token:      "company-token",
			body:       `{"entityStatus":"inactive"}`,
			wantStatus: http.StatusOK,
			wantCalled: true,
			want:       model.StatusInactive,
			wantActor:  "u-company",
		},
		{
			name:       "only platform admins delete",
			token:      "company-token",
			body:       `{"entityStatus":"DELETED"}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "platform admin deletes",
			token:      "admin-token",
			body:       `{"entityStatus":"DELETED"}`,
			wantStatus: http.StatusOK,
			wantCalled: true,
			want:       model.StatusDeleted,
			wantActor:  "u-admin",
		},
		{
			name:       "unknown status",
			token:      "admin-token",
			body:       `{"entityStatus":"ARCHIVED"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			token:      "admin-token",
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()
			rec := f.do(http.MethodPatch, "/persons/p-1/status", test.token, test.body)

			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, test.wantCalled, f.persons.called)
			if test.wantCalled {
				assert.Equal(t, "p-1", f.persons.id)
				assert.Equal(t, test.want, f.persons.status)
				assert.Equal(t, test.wantActor, f.persons.actorID)
			}
		})
	}
}

func TestServer_DeletePerson(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodDelete, "/persons/p-1", "company-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, f.persons.called)

	rec = f.do(http.MethodDelete, "/persons/p-1", "admin-token", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "u-admin", f.persons.actorID)
}

func TestServer_IncludeDeletedIsAdminOnly(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{token: "admin-token", want: true},
		{token: "company-token", want: false},
		{token: "viewer-token", want: false},
	}
	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			f := newFixture()
			rec := f.do(http.MethodGet, "/persons/p-1?includeDeleted=true", test.token, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, test.want, f.persons.includeDeleted)
		})
	}
}

func TestServer_ListPersons(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet,
		"/persons?page=2&limit=5&sort=email&order=ASC&search=a.b&entityStatus=inactive&createdFrom=2024-01-01&createdTo=2024-01-31&country=PE&documentType=DNI",
		"viewer-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := f.persons.filter
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, "email", got.Sort)
	assert.Equal(t, "ASC", got.Order)
	assert.Equal(t, "a.b", got.Search)
	assert.Equal(t, "inactive", got.EntityStatus)
	require.NotNil(t, got.CreatedFrom)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *got.CreatedFrom)
	require.NotNil(t, got.CreatedTo)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), *got.CreatedTo)
	assert.Equal(t, "PE", got.Country)
	assert.Equal(t, "DNI", got.DocumentType)

	var page map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, []any{}, page["data"])
	assert.Equal(t, float64(1), page["totalPages"])
}

func TestServer_ListRejectsMalformedParameters(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "page", path: "/persons?page=two"},
		{name: "limit", path: "/persons?limit=1.5"},
		{name: "created from", path: "/persons?createdFrom=yesterday"},
		{name: "created to", path: "/persons?createdTo=2024-13-01"},
		{name: "speaker rate", path: "/speakers?minRate=cheap"},
		{name: "speaker experience", path: "/speakers?maxExperience=lots"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()
			rec := f.do(http.MethodGet, test.path, "viewer-token", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, CodeValidationFailed, decodeError(t, rec).Error.Code)
			assert.False(t, f.persons.called)
		})
	}
}

func TestServer_ListSpeakersRanges(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/speakers?minExperience=3&maxRate=120.5&companyId=c-1", "viewer-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := f.speakers.filter
	require.NotNil(t, got.MinExperience)
	assert.Equal(t, 3, *got.MinExperience)
	assert.Nil(t, got.MaxExperience)
	assert.Nil(t, got.MinRate)
	require.NotNil(t, got.MaxRate)
	assert.Equal(t, 120.5, *got.MaxRate)
	assert.Equal(t, "c-1", got.CompanyID)

	rec = f.do(http.MethodGet, "/speakers/s-1/details", "viewer-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_AuditEvents(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/audit-events?resource=person", "company-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, f.audit.called)

	rec = f.do(http.MethodGet, "/audit-events?resource=person&entityId=p-1&page=3&limit=7", "admin-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.AuditFilter{Resource: "person", EntityID: "p-1", Page: 3, Limit: 7}, f.audit.filter)
}

func TestServer_UnknownRoute(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/orders", "admin-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, rec).Error.Code)
}

func TestServer_UploadLogo(t *testing.T) {
	png := append([]byte("\x89PNG\x0D\x0A\x1A\x0A"), make([]byte, 64)...)

	tests := []struct {
		name       string
		token      string
		field      string
		data       []byte
		wantStatus int
		wantCalled bool
	}{
		{name: "uploaded", token: "company-token", field: "file", data: png, wantStatus: http.StatusOK, wantCalled: true},
		{name: "missing field", token: "company-token", field: "logo", data: png, wantStatus: http.StatusBadRequest},
		{name: "viewer", token: "viewer-token", field: "file", data: png, wantStatus: http.StatusForbidden},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture()

			var body bytes.Buffer
			w := multipart.NewWriter(&body)
			part, err := w.CreateFormFile(test.field, "logo.png")
			require.NoError(t, err)
			_, err = part.Write(test.data)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			req := httptest.NewRequest(http.MethodPut, BasePath+"/companies/c-1/logo", &body)
			req.Header.Set("Content-Type", w.FormDataContentType())
			req.Header.Set("Authorization", "Bearer "+test.token)
			rec := httptest.NewRecorder()
			f.server.Handler().ServeHTTP(rec, req)

			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, test.wantCalled, f.companies.called)
			if test.wantCalled {
				assert.Equal(t, "c-1", f.companies.id)
				assert.Equal(t, "logo.png", f.companies.file.Name)
				assert.Equal(t, "image/png", f.companies.file.MimeType)
				assert.Equal(t, test.data, f.companies.file.Data)
			}
		})
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	f := newFixture()
	req := httptest.NewRequest(http.MethodOptions, BasePath+"/persons", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
