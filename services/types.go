package services

import (
	"context"
	"time"
)

// MetricsRecorder records business counters. *aws.MetricsClient satisfies it.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

type noopMetrics struct{}

func (noopMetrics) RecordCount(context.Context, string, map[string]string) error { return nil }

const metricsTimeout = 5 * time.Second

func recordAsync(m MetricsRecorder, name string) {
	if _, ok := m.(noopMetrics); ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsTimeout)
		defer cancel()
		_ = m.RecordCount(ctx, name, map[string]string{"Service": "storefront-service"})
	}()
}
