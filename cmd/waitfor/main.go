package main

import (
	"context"
	"flag"
	"net"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

func main() {
	// comma separated host:port list, e.g. mongo:27017,postgres:5432
	addrs := flag.String("addrs", "localhost:27017", "the addresses to wait for")
	attempts := flag.Int("attempts", 20, "the number of attempts per address")
	interval := flag.Duration("interval", time.Second, "the delay between two attempts")
	flag.Parse()

	g, ctx := errgroup.WithContext(context.Background())
	for _, addr := range strings.Split(*addrs, ",") {
		addr := strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		g.Go(func() error {
			return waitFor(ctx, addr, *attempts, *interval)
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("dependencies not available")
	}
}

// waitFor dials addr until a TCP connection succeeds.
func waitFor(ctx context.Context, addr string, attempts int, interval time.Duration) error {
	var dialer net.Dialer
	var err error
	for i := 1; i <= attempts; i++ {
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		var conn net.Conn
		conn, err = dialer.DialContext(dialCtx, "tcp", addr)
		cancel()
		if err == nil {
			conn.Close()
			log.WithField("addr", addr).Info("TCP connection available")
			return nil
		}

		log.WithError(err).WithField("addr", addr).WithField("attempt", i).Info("connection not yet available")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return err
}
