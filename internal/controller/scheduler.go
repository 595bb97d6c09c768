package controller

import "time"

// Scheduler runs fn once after delay. The returned cancel function prevents a pending
// call from running; calling it after fn ran is harmless.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules calls with time.AfterFunc. fn runs on its own goroutine.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}
