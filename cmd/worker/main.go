package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	grpcactor "github.com/Roycs1998/new-back-lavc-sub001/internal/actors/grpc"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/postgres"
	subscriberactor "github.com/Roycs1998/new-back-lavc-sub001/internal/actors/pubsub/subscriber"
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
	grpcServerEndpoint = flag.String("grpc-server-endpoint", "localhost:50052", "gRPC health endpoint")
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateWorker(); err != nil {
		return err
	}
	log.SetLevel(cfg.Level())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		log.WithError(err).Error("db does not appear to be reachable")
		return err
	}
	defer db.Close()
	auditDB, err := postgres.NewAuditDB(postgres.AuditDBArgs{DB: db})
	if err != nil {
		return err
	}
	recorder := usecase.NewRecorder(auditDB)

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	subscriber := subscriberactor.NewSubscriber(subscriberactor.SubscriberArgs{
		Subscription: client.Subscription(cfg.PubSub.Subscription),
		Handler:      recorder,
	})

	health := grpcactor.NewHealthService(grpcactor.HealthServiceArgs{
		Dependencies: map[string]grpcactor.Pinger{"postgres": db},
	}, grpcactor.WithInterval(cfg.GRPC.HealthInterval))

	lis, err := net.Listen("tcp", *grpcServerEndpoint)
	if err != nil {
		return err
	}
	s := grpc.NewServer()
	health.Register(s)

	g, gctx := errgroup.WithContext(ctx)
	// start subscriber
	g.Go(func() error {
		return subscriber.Consume(gctx)
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
		WithField("grpc-server-addr", *grpcServerEndpoint).
		WithField("subscription", cfg.PubSub.Subscription).
		Info("worker up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the worker")

	return g.Wait()
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.WithError(err).Fatal("worker terminated")
	}
}
