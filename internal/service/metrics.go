package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"gecapi/internal/repository"
	"gecapi/internal/workflow"
)

// Metrics counts workflow operations by outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics registers the workflow counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gec_workflow_operations_total",
				Help: "Courrier workflow operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
	if err := reg.Register(m.operations); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, workflow.ErrValidation), errors.Is(err, workflow.ErrSchemaMismatch):
		return "rejected"
	case errors.Is(err, workflow.ErrNodeNotFound), errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, workflow.ErrInactiveNode):
		return "inactive_node"
	case errors.Is(err, repository.ErrVersionConflict), errors.Is(err, ErrBusy):
		return "conflict"
	}
	return "error"
}
