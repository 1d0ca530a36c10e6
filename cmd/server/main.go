package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	gcs "cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	grpcactor "github.com/Roycs1998/new-back-lavc-sub001/internal/actors/grpc"
	mongoactor "github.com/Roycs1998/new-back-lavc-sub001/internal/actors/mongo"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/postgres"
	produceractor "github.com/Roycs1998/new-back-lavc-sub001/internal/actors/pubsub/producer"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/rest"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/storage"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/token"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/config"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/usecase"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)
}

var (
	grpcServerEndpoint = flag.String("grpc-server-endpoint", "", "gRPC server endpoint (overrides GRPC_ADDR)")
	httpServerEndpoint = flag.String("http-server-endpoint", "", "HTTP server endpoint (overrides HTTP_ADDR)")
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	log.SetLevel(cfg.Level())
	if *grpcServerEndpoint != "" {
		cfg.GRPC.Addr = *grpcServerEndpoint
	}
	if *httpServerEndpoint != "" {
		cfg.HTTP.Addr = *httpServerEndpoint
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// mongo
	client, err := mongoactor.Connect(ctx, cfg.MongoDB.URL, cfg.MongoDB.ConnectTimeout)
	if err != nil {
		log.WithError(err).Error("db does not appear to be reachable")
		return err
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDB.Database)

	collectionArgs := mongoactor.CollectionArgs{Database: db}
	persons, err := mongoactor.NewPersonCollection(collectionArgs)
	if err != nil {
		return err
	}
	companies, err := mongoactor.NewCompanyCollection(collectionArgs)
	if err != nil {
		return err
	}
	users, err := mongoactor.NewUserCollection(collectionArgs)
	if err != nil {
		return err
	}
	speakers, err := mongoactor.NewSpeakerCollection(collectionArgs)
	if err != nil {
		return err
	}
	paymentMethods, err := mongoactor.NewPaymentMethodCollection(collectionArgs)
	if err != nil {
		return err
	}
	if err := mongoactor.EnsureAllIndexes(ctx, persons, companies, users, speakers, paymentMethods); err != nil {
		log.WithError(err).Error("could not create mongo indexes")
		return err
	}

	// postgres, read side of the audit trail
	pgDB, err := postgres.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		log.WithError(err).Error("could not connect to postgres")
		return err
	}
	defer pgDB.Close()
	auditDB, err := postgres.NewAuditDB(postgres.AuditDBArgs{DB: pgDB})
	if err != nil {
		return err
	}

	// pubsub
	psClient, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return err
	}
	defer psClient.Close()
	topic := psClient.Topic(cfg.PubSub.Topic)
	defer topic.Stop()
	producer, err := produceractor.NewProducer(topic)
	if err != nil {
		return err
	}

	// object storage
	gcsClient, err := gcs.NewClient(ctx)
	if err != nil {
		return err
	}
	defer gcsClient.Close()
	bucket, err := storage.NewBucket(storage.BucketArgs{Client: gcsClient, Name: cfg.Storage.Bucket},
		storage.WithBaseURL(cfg.Storage.BaseURL))
	if err != nil {
		return err
	}

	issuer, err := token.NewIssuer(token.IssuerArgs{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer, TTL: cfg.JWT.TTL})
	if err != nil {
		return err
	}

	// usecases
	personSvc := usecase.NewPersonService(usecase.PersonServiceArgs{Repository: persons, Sender: producer})
	companySvc := usecase.NewCompanyService(usecase.CompanyServiceArgs{Repository: companies, Storage: bucket, Sender: producer})
	userSvc := usecase.NewUserService(usecase.UserServiceArgs{
		Repository: users,
		Persons:    personSvc,
		Companies:  companySvc,
		Sender:     producer,
	})
	speakerSvc := usecase.NewSpeakerService(usecase.SpeakerServiceArgs{
		Repository: speakers,
		Persons:    personSvc,
		Companies:  companySvc,
		Sender:     producer,
	})
	paymentMethodSvc := usecase.NewPaymentMethodService(usecase.PaymentMethodServiceArgs{
		Repository: paymentMethods,
		Companies:  companySvc,
		Sender:     producer,
	})
	authSvc := usecase.NewAuthService(usecase.AuthServiceArgs{Users: userSvc, Persons: personSvc, Tokens: issuer})
	recorder := usecase.NewRecorder(auditDB)

	if cfg.Bootstrap.AdminEmail != "" {
		admin, err := authSvc.EnsurePlatformAdmin(ctx, usecase.BootstrapAdminArgs{
			Email:    cfg.Bootstrap.AdminEmail,
			Password: cfg.Bootstrap.AdminPassword,
		})
		if err != nil {
			log.WithError(err).Error("could not bootstrap the platform admin")
			return err
		}
		log.WithField("user-id", admin.ID).Info("platform admin available")
	}

	health := grpcactor.NewHealthService(grpcactor.HealthServiceArgs{
		Dependencies: map[string]grpcactor.Pinger{
			"mongodb":  grpcactor.PingerFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) }),
			"postgres": pgDB,
		},
	}, grpcactor.WithInterval(cfg.GRPC.HealthInterval))

	restServer := rest.NewServer(rest.ServerArgs{
		Auth:           authSvc,
		Persons:        personSvc,
		Companies:      companySvc,
		Users:          userSvc,
		Speakers:       speakerSvc,
		PaymentMethods: paymentMethodSvc,
		Audit:          recorder,
	}, rest.WithHealthChecker(health), rest.WithCORSOrigins(cfg.HTTP.CORSOrigins))

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return err
	}
	s := grpc.NewServer()
	health.Register(s)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return restServer.ListenAndServe(gctx, rest.ListenAndServeArgs{
			Addr:            cfg.HTTP.Addr,
			ReadTimeout:     cfg.HTTP.ReadTimeout,
			WriteTimeout:    cfg.HTTP.WriteTimeout,
			ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		})
	})
	g.Go(func() error {
		return s.Serve(lis)
	})
	g.Go(func() error {
		health.Run(gctx)
		return nil
	})
	g.Go(func() error {
		// Wait for signal
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		select {
		case sig := <-ch:
			log.WithField("signal", sig.String()).Info("shutting down")
		case <-gctx.Done():
		}
		cancel()
		s.GracefulStop()
		return nil
	})

	log.
		WithField("http-server-addr", cfg.HTTP.Addr).
		WithField("grpc-server-addr", cfg.GRPC.Addr).
		Info("servers up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the server")

	return g.Wait()
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.WithError(err).Fatal("server terminated")
	}
}
