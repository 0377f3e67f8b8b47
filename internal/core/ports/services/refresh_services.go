package services

import (
	"context"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
)

// RefreshSvc runs refresh cycles of the official rates.
type RefreshSvc interface {
	// Run executes one cycle and reports its outcome. It never panics and
	// never returns without an outcome.
	Run(ctx context.Context, trigger domain.RefreshTrigger) domain.RefreshOutcome

	// RunAsync starts a cycle in the background and returns immediately.
	RunAsync(trigger domain.RefreshTrigger)
}
