package api

import (
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/config"
)

// FaultInjector simulates network flakiness the way the original mocked
// backend did: random latency on every request and a configurable failure
// rate on writes. Injected failures are transient and always safe to
// retry; reads are never failed so the UI can still render.
type FaultInjector struct {
	cfg config.FaultConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFaultInjector builds an injector from config. Returns nil when every
// knob is zero so the middleware can be skipped entirely.
func NewFaultInjector(cfg config.FaultConfig) *FaultInjector {
	if cfg.WriteErrorRate <= 0 && cfg.LatencyMax <= 0 {
		return nil
	}
	return &FaultInjector{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Middleware applies the configured latency and failure injection
func (f *FaultInjector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay := f.latency(); delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if isWrite(r.Method) && f.shouldFail() {
			slog.Warn("injecting transient failure",
				"method", r.Method,
				"path", r.URL.Path,
			)
			respondError(w, http.StatusInternalServerError, "transient_error", "simulated network failure, retry the request")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (f *FaultInjector) latency() time.Duration {
	if f.cfg.LatencyMax <= 0 {
		return 0
	}
	span := f.cfg.LatencyMax - f.cfg.LatencyMin
	if span <= 0 {
		return f.cfg.LatencyMin
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg.LatencyMin + time.Duration(f.rng.Int63n(int64(span)))
}

func (f *FaultInjector) shouldFail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng.Float64() < f.cfg.WriteErrorRate
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
