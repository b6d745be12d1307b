package relay

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSupervisor_RetriesAfterFailures(t *testing.T) {
	const failures = 3
	cooldown := 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts []time.Time
	sv := &Supervisor{
		cooldown: cooldown,
		session: func(ctx context.Context) error {
			attempts = append(attempts, time.Now())
			if len(attempts) <= failures {
				return errors.New("transport error")
			}
			// The (failures+1)-th session "succeeds": hold the
			// connection until the test shuts everything down.
			cancel()
			<-ctx.Done()
			return ctx.Err()
		},
	}

	sv.Run(ctx)

	if len(attempts) != failures+1 {
		t.Fatalf("attempts = %d, want %d", len(attempts), failures+1)
	}
	for i := 1; i < len(attempts); i++ {
		if gap := attempts[i].Sub(attempts[i-1]); gap < cooldown {
			t.Errorf("attempt %d started %v after failure, want >= %v cooldown", i+1, gap, cooldown)
		}
	}
}

func TestSupervisor_CleanCloseRestartsWithoutCooldown(t *testing.T) {
	cooldown := 300 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts []time.Time
	sv := &Supervisor{
		cooldown: cooldown,
		session: func(ctx context.Context) error {
			attempts = append(attempts, time.Now())
			if len(attempts) == 1 {
				return nil // peer closed cleanly
			}
			cancel()
			<-ctx.Done()
			return ctx.Err()
		},
	}

	sv.Run(ctx)

	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	if gap := attempts[1].Sub(attempts[0]); gap >= cooldown {
		t.Errorf("restart after clean close took %v, want no cooldown (< %v)", gap, cooldown)
	}
}

func TestSupervisor_StopsOnCancelDuringCooldown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	sv := &Supervisor{
		cooldown: time.Hour,
		session: func(ctx context.Context) error {
			calls++
			return errors.New("transport error")
		},
	}

	done := make(chan struct{})
	go func() {
		sv.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop during cooldown")
	}
	if calls != 1 {
		t.Errorf("session calls = %d, want 1", calls)
	}
}
