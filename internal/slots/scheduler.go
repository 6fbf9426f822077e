package slots

import "time"

// Scheduler runs the continuation that resolves a round after the spin delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler schedules continuations on the runtime timer
type TimerScheduler struct{}

// AfterFunc runs f on its own goroutine once d has elapsed
func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ImmediateScheduler runs continuations synchronously, ignoring the delay
type ImmediateScheduler struct{}

// AfterFunc runs f before returning
func (ImmediateScheduler) AfterFunc(_ time.Duration, f func()) {
	f()
}
