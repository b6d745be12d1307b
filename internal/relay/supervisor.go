package relay

import (
	"context"
	"log"
	"time"

	"github.com/clipcast/clipcast/internal/clipboard"
	"github.com/clipcast/clipcast/internal/config"
)

// retryCooldown is the fixed wait between a failed session and the next
// connection attempt. No backoff: a human-scale cadence is the point for a
// long-running background client.
const retryCooldown = 5 * time.Second

// Supervisor keeps one subscription alive forever. Any session failure is
// logged and retried after a cooldown; a clean peer close restarts
// immediately with no cooldown.
type Supervisor struct {
	cooldown time.Duration
	session  func(ctx context.Context) error
}

// NewSupervisor builds a supervisor that connects and runs sessions against
// the given config and sink.
func NewSupervisor(cfg *config.Config, sink clipboard.Sink, verbose bool) *Supervisor {
	return &Supervisor{
		cooldown: retryCooldown,
		session: func(ctx context.Context) error {
			s, err := Connect(ctx, cfg, sink, verbose)
			if err != nil {
				return err
			}
			return s.Run(ctx)
		},
	}
}

// Run loops without bound until ctx is cancelled. There is no maximum retry
// count; the process never exits over a transient network failure.
func (sv *Supervisor) Run(ctx context.Context) {
	for {
		err := sv.session(ctx)

		if ctx.Err() != nil {
			log.Println("Supervisor stopped")
			return
		}

		if err != nil {
			log.Printf("Session ended: %v (reconnecting in %v)", err, sv.cooldown)
			select {
			case <-time.After(sv.cooldown):
			case <-ctx.Done():
				log.Println("Supervisor stopped")
				return
			}
			continue
		}

		log.Println("Connection closed cleanly, resubscribing")
	}
}
