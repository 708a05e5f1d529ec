// Package leaktest catches goroutines left running by concurrent tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout  = 500 * time.Millisecond
	settleInterval = 10 * time.Millisecond
)

// GoroutineChecker compares the goroutine count before and after a test body
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleInterval)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines are still running
// once exiting goroutines have had time to finish.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := settle(g.before+tolerance, settleTimeout)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and requires the goroutine count to return to where it was
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines are running
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	if n := settle(target, timeout); n > target {
		t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d", n, target)
	}
}

// settle polls until the goroutine count drops to target or timeout passes,
// returning the last count seen.
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(settleInterval)
	}
}
