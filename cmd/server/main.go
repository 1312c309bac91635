// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"meetsched/internal/meeting"
	meetingmetrics "meetsched/internal/meeting/metrics"
	"meetsched/internal/person"
	personmetrics "meetsched/internal/person/metrics"
	"meetsched/internal/platform/config"
	"meetsched/internal/platform/httpserver"
	"meetsched/internal/platform/logger"
	platformmetrics "meetsched/internal/platform/metrics"
	"meetsched/internal/scheduling"
	httptransport "meetsched/internal/transport/http"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	personStore := person.NewInMemoryStore()
	personService := person.NewService(personStore, person.WithMetrics(personmetrics.New()))

	meetingStore := meeting.NewInMemoryStore()
	scheduler := scheduling.NewService(personService, meetingStore,
		scheduling.WithMetrics(meetingmetrics.New()))

	httpMetrics := platformmetrics.New()
	router := httptransport.NewRouter(log, httpMetrics,
		httptransport.NewPersonHandler(personService, log),
		httptransport.NewMeetingHandler(scheduler, personService, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting meetsched", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
