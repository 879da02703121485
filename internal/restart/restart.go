// Package restart drives the forced stop and start cycle of an instance.
package restart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ec2ctl-io/ec2ctl/internal/ec2"
)

// DefaultPollInterval is the initial wait between state observations.
const DefaultPollInterval = 21 * time.Second

// Orchestrator stops an instance, waits for it to reach stopped, starts it
// again and waits for running. Every observation is a fresh lookup. There
// are no retries: the first failed lookup or command aborts the cycle, and
// an instance that never converges keeps the loop polling until the
// context is cancelled.
type Orchestrator struct {
	Service ec2.Service
	Log     *slog.Logger
	// PollInterval overrides DefaultPollInterval when positive.
	PollInterval time.Duration

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns an Orchestrator driving svc.
func New(svc ec2.Service, log *slog.Logger) *Orchestrator {
	return &Orchestrator{Service: svc, Log: log}
}

// ForceRestart stops the instance with id, forcing the stop past a hung
// guest, then polls until the instance has been observed stopped and then
// running again. The poll interval doubles exactly once, at the moment the
// start command is issued: booting takes longer than shutting down.
func (o *Orchestrator) ForceRestart(ctx context.Context, id string) error {
	inst, err := o.Service.ByID(ctx, id)
	if err != nil {
		return err
	}
	o.log().Info("instance state", "instance", inst.ID(), "state", inst.State())

	if _, err := inst.Stop(ctx, true); err != nil {
		return err
	}
	o.log().Info("stop issued", "instance", inst.ID(), "force", true)

	interval := o.interval()
	started := false
	for {
		if err := o.wait(ctx, interval); err != nil {
			return err
		}
		inst, err = o.Service.Reload(ctx, inst)
		if err != nil {
			return err
		}
		o.log().Info("instance state", "instance", inst.ID(), "state", inst.State())

		switch {
		case !started && inst.Stopped():
			if _, err := inst.Start(ctx); err != nil {
				return err
			}
			interval *= 2
			started = true
			o.log().Info("start issued", "instance", inst.ID(), "interval", interval)
		case started && inst.Running():
			o.log().Info("restart complete", "instance", inst.ID())
			return nil
		}
	}
}

func (o *Orchestrator) wait(ctx context.Context, d time.Duration) error {
	if o.sleep != nil {
		return o.sleep(ctx, d)
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("restart cancelled: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}

func (o *Orchestrator) interval() time.Duration {
	if o.PollInterval > 0 {
		return o.PollInterval
	}
	return DefaultPollInterval
}

func (o *Orchestrator) log() *slog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return slog.Default()
}
