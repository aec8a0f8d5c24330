package syncmode

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestOnlineRequiresAllThree(t *testing.T) {
	c := New()

	if c.Online() {
		t.Error("expected fresh controller to be offline")
	}

	c.SetAuthenticated(true)
	c.SetPremium(true)
	if c.Online() {
		t.Error("expected offline without connectivity")
	}

	c.SetConnected(true)
	if !c.Online() {
		t.Error("expected online with all three inputs set")
	}

	c.SetPremium(false)
	if c.Online() {
		t.Error("expected premium downgrade to force offline")
	}
}

func TestOnOnlineFiresOnTransitionOnly(t *testing.T) {
	c := New()

	fired := 0
	c.OnOnline(func() { fired++ })

	c.SetAuthenticated(true)
	c.SetPremium(true)
	if fired != 0 {
		t.Errorf("expected no callback while still offline, got %d", fired)
	}

	c.SetConnected(true)
	if fired != 1 {
		t.Errorf("expected one callback on going online, got %d", fired)
	}

	// re-asserting an input while already online is not a transition
	c.SetConnected(true)
	c.SetPremium(true)
	if fired != 1 {
		t.Errorf("expected no callback without a transition, got %d", fired)
	}

	c.SetConnected(false)
	c.SetConnected(true)
	if fired != 2 {
		t.Errorf("expected callback on each offline-to-online transition, got %d", fired)
	}
}

func TestWatchFeedsConnectivity(t *testing.T) {
	c := New()
	c.SetAuthenticated(true)
	c.SetPremium(true)

	var failing atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Watch(ctx, 5*time.Millisecond, func(context.Context) error {
			if failing.Load() {
				return errors.New("network down")
			}
			return nil
		})
	}()

	waitFor := func(want bool) {
		t.Helper()
		deadline := time.After(time.Second)
		for {
			if c.Online() == want {
				return
			}
			select {
			case <-deadline:
				t.Fatalf("timed out waiting for online=%v", want)
			case <-time.After(time.Millisecond):
			}
		}
	}

	waitFor(true)

	failing.Store(true)
	waitFor(false)

	cancel()
	<-done
}
