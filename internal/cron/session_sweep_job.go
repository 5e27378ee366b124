package cron

import (
	"context"
	"fmt"

	"github.com/esihle/storefront-backend/pkg/logger"
)

const SessionSweepJobName = "cart-session-sweep"

type sessionSweeper interface {
	Sweep(ctx context.Context) int
	Len() int
}

// SessionSweepJobParams configure the idle cart eviction job.
type SessionSweepJobParams struct {
	Logger   *logger.Logger
	Sessions sessionSweeper
}

// NewSessionSweepJob evicts cart sessions that outlived their TTL.
func NewSessionSweepJob(params SessionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("sessions required")
	}
	return &sessionSweepJob{logg: params.Logger, sessions: params.Sessions}, nil
}

type sessionSweepJob struct {
	logg     *logger.Logger
	sessions sessionSweeper
}

func (j *sessionSweepJob) Name() string { return SessionSweepJobName }

func (j *sessionSweepJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	removed := j.sessions.Sweep(ctx)
	j.logg.Debug(j.logg.WithFields(ctx, map[string]any{
		"removed": removed,
		"active":  j.sessions.Len(),
	}), "session sweep complete")
	return nil
}
