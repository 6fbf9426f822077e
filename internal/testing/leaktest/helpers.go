// Package leaktest reports goroutines left running by a test.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
	stackDumpSize = 64 << 10
)

// GoroutineChecker compares the goroutine count at the end of a test
// against a baseline taken at the start
type GoroutineChecker struct {
	t       testing.TB
	before  int
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{
		t:       t,
		before:  settledCount(),
		timeout: settleTimeout,
	}
}

// Check polls until at most tolerance extra goroutines remain.
// If the count has not come down by the deadline the test fails with a stack dump.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(g.timeout)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance {
		if time.Now().After(deadline) {
			buf := make([]byte, stackDumpSize)
			n := runtime.Stack(buf, true)
			g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d\n%s",
				g.before, after, tolerance, buf[:n])
			return
		}
		time.Sleep(pollInterval)
		after = runtime.NumGoroutine()
	}
}

// settledCount waits briefly for goroutines from earlier tests to exit
func settledCount() int {
	n := runtime.NumGoroutine()
	for i := 0; i < 5; i++ {
		runtime.Gosched()
		time.Sleep(pollInterval)
		next := runtime.NumGoroutine()
		if next == n {
			break
		}
		n = next
	}
	return n
}
