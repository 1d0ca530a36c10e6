package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// BasePath is the prefix of every route.
const BasePath = "/api/v1"

// ServerArgs are the args to instantiate the Server. Auth is mandatory; the routes of a nil usecase are
// not registered.
type ServerArgs struct {
	Auth           authUsecase
	Persons        personUsecase
	Companies      companyUsecase
	Users          userUsecase
	Speakers       speakerUsecase
	PaymentMethods paymentMethodUsecase
	Audit          auditUsecase
}

// ServerOptArgs are the optional args of the Server.
type ServerOptArgs = func(*Server)

// WithHealthChecker makes /healthz reflect the reachability of the dependencies.
func WithHealthChecker(h HealthChecker) ServerOptArgs {
	return func(s *Server) {
		s.health = h
	}
}

// WithCORSOrigins restricts the browser origins. All origins are allowed by default.
func WithCORSOrigins(origins []string) ServerOptArgs {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// NewServer creates a new Server and registers its routes.
func NewServer(args ServerArgs, optArgs ...ServerOptArgs) *Server {
	s := &Server{
		auth:           args.Auth,
		persons:        args.Persons,
		companies:      args.Companies,
		users:          args.Users,
		speakers:       args.Speakers,
		paymentMethods: args.PaymentMethods,
		audit:          args.Audit,
	}
	for _, opt := range optArgs {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

// Server is the REST adapter of the usecases.
type Server struct {
	auth           authUsecase
	persons        personUsecase
	companies      companyUsecase
	users          userUsecase
	speakers       speakerUsecase
	paymentMethods paymentMethodUsecase
	audit          auditUsecase
	health         HealthChecker
	corsOrigins    []string
	engine         *gin.Engine
}

// Handler returns the http.Handler serving the routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), gin.Recovery(), CORS(s.corsOrigins))
	if err := r.SetTrustedProxies(nil); err != nil {
		log.WithError(err).Warn("failed to set trusted proxies")
	}
	r.NoRoute(func(c *gin.Context) {
		abortWithError(c, &model.NotFoundError{Resource: "route " + c.Request.Method + " " + c.Request.URL.Path})
	})

	api := r.Group(BasePath)
	api.GET("/healthz", s.handleHealthz)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("", Authenticate(s.auth))
	authed.GET("/auth/me", s.handleMe)

	if s.persons != nil {
		(&resource[*model.Person, model.CreatePersonArgs, model.UpdatePersonArgs, model.PersonFilter]{
			create:       s.persons.CreatePerson,
			get:          s.persons.GetPerson,
			update:       s.persons.UpdatePerson,
			changeStatus: s.persons.ChangePersonStatus,
			remove:       s.persons.DeletePerson,
			list:         s.persons.ListPersons,
			filter:       personFilter,
		}).mount(authed.Group("/persons"))
	}

	if s.companies != nil {
		companies := authed.Group("/companies")
		(&resource[*model.Company, model.CreateCompanyArgs, model.UpdateCompanyArgs, model.CompanyFilter]{
			create:       s.companies.CreateCompany,
			get:          s.companies.GetCompany,
			update:       s.companies.UpdateCompany,
			changeStatus: s.companies.ChangeCompanyStatus,
			remove:       s.companies.DeleteCompany,
			list:         s.companies.ListCompanies,
			filter:       companyFilter,
		}).mount(companies)
		companies.PUT("/:id/logo", RequireRole(writers...), s.handleUploadLogo)
	}

	if s.users != nil {
		(&resource[*model.User, model.CreateUserArgs, model.UpdateUserArgs, model.UserFilter]{
			create:       s.users.CreateUser,
			get:          s.users.GetUser,
			update:       s.users.UpdateUser,
			changeStatus: s.users.ChangeUserStatus,
			remove:       s.users.DeleteUser,
			list:         s.users.ListUsers,
			filter:       userFilter,
		}).mount(authed.Group("/users"))
	}

	if s.speakers != nil {
		speakers := authed.Group("/speakers")
		(&resource[*model.Speaker, model.CreateSpeakerArgs, model.UpdateSpeakerArgs, model.SpeakerFilter]{
			create:       s.speakers.CreateSpeaker,
			get:          s.speakers.GetSpeaker,
			update:       s.speakers.UpdateSpeaker,
			changeStatus: s.speakers.ChangeSpeakerStatus,
			remove:       s.speakers.DeleteSpeaker,
			list:         s.speakers.ListSpeakers,
			filter:       speakerFilter,
		}).mount(speakers)
		speakers.GET("/:id/details", s.handleSpeakerDetails)
	}

	if s.paymentMethods != nil {
		(&resource[*model.PaymentMethod, model.CreatePaymentMethodArgs, model.UpdatePaymentMethodArgs, model.PaymentMethodFilter]{
			create:       s.paymentMethods.CreatePaymentMethod,
			get:          s.paymentMethods.GetPaymentMethod,
			update:       s.paymentMethods.UpdatePaymentMethod,
			changeStatus: s.paymentMethods.ChangePaymentMethodStatus,
			remove:       s.paymentMethods.DeletePaymentMethod,
			list:         s.paymentMethods.ListPaymentMethods,
			filter:       paymentMethodFilter,
		}).mount(authed.Group("/payment-methods"))
	}

	if s.audit != nil {
		authed.GET("/audit-events", RequireRole(admins...), s.handleListAuditEvents)
	}
	return r
}

// ListenAndServeArgs are the arguments of ListenAndServe.
type ListenAndServeArgs struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ListenAndServe serves the routes until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, args ListenAndServeArgs) error {
	srv := &http.Server{
		Addr:              args.Addr,
		Handler:           s.engine,
		ReadTimeout:       args.ReadTimeout,
		ReadHeaderTimeout: args.ReadTimeout,
		WriteTimeout:      args.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), args.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
