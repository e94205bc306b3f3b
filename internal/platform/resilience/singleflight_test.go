package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var leaderVal any
	go func() {
		defer wg.Done()
		leaderVal, _, _ = g.Do("key", func() (any, error) {
			calls.Add(1)
			close(started)
			<-release
			return "result", nil
		})
	}()

	<-started

	const followers = 8
	var entered sync.WaitGroup
	entered.Add(followers)
	wg.Add(followers)
	for i := 0; i < followers; i++ {
		i := i
		go func() {
			defer wg.Done()
			entered.Done()
			val, err, _ := g.Do("key", func() (any, error) {
				calls.Add(1)
				return "result", nil
			})
			if err != nil {
				t.Errorf("follower %d error: %v", i, err)
			}
			if val != "result" {
				t.Errorf("follower %d got %v", i, val)
			}
		}()
	}

	// Give every follower a chance to reach Do before the leader returns.
	entered.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected 1 underlying call, got %d", calls.Load())
	}
	if leaderVal != "result" {
		t.Fatalf("leader got %v", leaderVal)
	}
}

func TestSingleFlight_ErrorsAreShared(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	wantErr := errors.New("boom")

	_, err, shared := g.Do("key", func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected boom, got %v", err)
	}
	if shared {
		t.Fatal("lone caller must not be marked shared")
	}
}

func TestSingleFlight_KeyIsReusableAfterCompletion(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		val, err, _ := g.Do("key", func() (any, error) {
			return calls.Add(1), nil
		})
		if err != nil {
			t.Fatalf("Do error: %v", err)
		}
		if val != int32(i+1) {
			t.Fatalf("expected call %d, got %v", i+1, val)
		}
	}
}
