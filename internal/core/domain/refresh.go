package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefreshTrigger names what started a refresh cycle.
type RefreshTrigger string

const (
	TriggerStartup RefreshTrigger = "startup"
	TriggerCron    RefreshTrigger = "cron"
	TriggerManual  RefreshTrigger = "manual"
)

// RefreshStage is a step of the refresh cycle state machine.
type RefreshStage string

const (
	StageIdle        RefreshStage = "idle"
	StageFetching    RefreshStage = "fetching"
	StageExtracting  RefreshStage = "extracting"
	StageNormalizing RefreshStage = "normalizing"
	StagePersisting  RefreshStage = "persisting"
	StageSucceeded   RefreshStage = "succeeded"
	StageFailed      RefreshStage = "failed"
)

// RefreshOutcome is the result of one refresh cycle.
// On failure, FailedStage is the stage that aborted the cycle and Err its cause.
type RefreshOutcome struct {
	Trigger     RefreshTrigger
	Stage       RefreshStage
	FailedStage RefreshStage
	Err         error
	ValidAt     time.Time
	USD         decimal.Decimal
	EUR         decimal.Decimal
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Succeeded reports whether the cycle persisted a snapshot.
func (o RefreshOutcome) Succeeded() bool {
	return o.Stage == StageSucceeded
}
