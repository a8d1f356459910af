package session

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Save results reported by the saves counter.
const (
	resultWritten   = "written"
	resultUnchanged = "unchanged"
	resultCleared   = "cleared"
	resultTooLarge  = "too_large"
	resultError     = "error"
)

type metrics struct {
	loads *prometheus.CounterVec
	saves *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cookiestore",
		Subsystem: "session",
		Name:      "loads_total",
		Help:      "Session cookies read, partitioned by outcome.",
	}, []string{"outcome"})

	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cookiestore",
		Subsystem: "session",
		Name:      "saves_total",
		Help:      "Session save attempts, partitioned by result.",
	}, []string{"result"})

	var err error
	if loads, err = register(reg, loads); err != nil {
		return nil, err
	}
	if saves, err = register(reg, saves); err != nil {
		return nil, err
	}

	return &metrics{loads: loads, saves: saves}, nil
}

// register reuses an identical collector when several stores share a registry.
func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (m *metrics) load(o Outcome) {
	if m != nil {
		m.loads.WithLabelValues(o.String()).Inc()
	}
}

func (m *metrics) save(result string) {
	if m != nil {
		m.saves.WithLabelValues(result).Inc()
	}
}
