// Package metrics exposes prometheus counters for the expensive searches:
// key generation draws, the RSA trial-division attack and period estimation.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BackendStack21/cryptolab-go/log"
)

const namespace = "cryptolab"

// Crack outcomes used as the "result" label of CrackResults.
const (
	ResultFound     = "found"
	ResultNotFound  = "not_found"
	ResultCancelled = "cancelled"
)

var (
	// Registry holds every cryptolab collector plus the go runtime collectors.
	Registry = prometheus.NewRegistry()

	// KeyGenAttempts counts candidate private exponents drawn during key generation.
	KeyGenAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "keygen_attempts_total",
		Help:      "Number of candidate private exponents drawn during RSA key generation",
	})

	// CrackCandidates counts trial divisors examined by the RSA attack.
	CrackCandidates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "crack_candidates_total",
		Help:      "Number of trial divisors examined while factoring RSA moduli",
	})

	// CrackResults counts finished attacks by outcome.
	CrackResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "crack_results_total",
		Help:      "Number of RSA attacks by outcome",
	}, []string{"result"})

	// PeriodEstimations counts Vigenère period estimations.
	PeriodEstimations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "period_estimations_total",
		Help:      "Number of Vigenère period estimations run",
	})
)

func init() {
	Registry.MustRegister(
		KeyGenAttempts,
		CrackCandidates,
		CrackResults,
		PeriodEstimations,
		collectors.NewGoCollector(),
	)
}

// Handler serves the registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// Start serves Handler on addr under /metrics until ctx is done.
func Start(ctx context.Context, addr string) error {
	logger := log.FromContextOrDefault(ctx).Named("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
