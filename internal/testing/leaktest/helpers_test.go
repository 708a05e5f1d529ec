package leaktest

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

// recorder captures failures instead of failing the enclosing test
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(string, ...any) { r.failed = true }

func TestGoroutineChecker(t *testing.T) {
	tests := []struct {
		name      string
		body      func(stop <-chan struct{})
		tolerance int
		wantLeak  bool
	}{
		{
			name: "nothing started",
			body: func(<-chan struct{}) {},
		},
		{
			name: "workers joined",
			body: func(<-chan struct{}) {
				var wg sync.WaitGroup
				for i := 0; i < 8; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						time.Sleep(time.Millisecond)
					}()
				}
				wg.Wait()
			},
		},
		{
			name: "goroutine exiting after the body returns",
			body: func(<-chan struct{}) {
				go time.Sleep(50 * time.Millisecond)
			},
		},
		{
			name: "blocked goroutine within tolerance",
			body: func(stop <-chan struct{}) {
				go func() { <-stop }()
			},
			tolerance: 1,
		},
		{
			name: "blocked goroutines over tolerance",
			body: func(stop <-chan struct{}) {
				for i := 0; i < 3; i++ {
					go func() { <-stop }()
				}
			},
			tolerance: 1,
			wantLeak:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stop := make(chan struct{})
			defer close(stop)

			rec := &recorder{TB: t}
			checker := NewGoroutineChecker(rec)
			tt.body(stop)
			checker.Check(tt.tolerance)

			if rec.failed != tt.wantLeak {
				t.Errorf("leak reported = %v, want %v", rec.failed, tt.wantLeak)
			}
		})
	}
}

func TestCheckNoGoroutineLeak(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			time.Sleep(time.Millisecond)
		}()
		<-done
	})
}

func TestWaitForGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		go time.Sleep(20 * time.Millisecond)
	}

	WaitForGoroutines(t, before, time.Second)
}
