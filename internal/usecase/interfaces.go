package usecase

import "context"

// UserDirectory reads account data held by the identity provider.
type UserDirectory interface {
	GetUserEmail(ctx context.Context, uid string) (string, error)
}

// MetricsRecorder counts domain events. *metrics.Metrics satisfies it.
type MetricsRecorder interface {
	Mutation(resource, op string)
	Enrichment(step, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) Mutation(resource, op string)    {}
func (noopMetrics) Enrichment(step, outcome string) {}

func orNoop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
