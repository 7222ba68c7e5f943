package windows

import (
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func TestRefreshTimerFires(t *testing.T) {
	var ticks, fires int32

	rt := StartRefreshTimer(30*time.Millisecond, 10*time.Millisecond,
		func(remaining time.Duration) { atomic.AddInt32(&ticks, 1) },
		func() { atomic.AddInt32(&fires, 1) },
	)

	select {
	case <-rt.Done():
	case <-time.After(time.Second):
		t.Fatal("Countdown did not finish")
	}

	if n := atomic.LoadInt32(&fires); n != 1 {
		t.Errorf("Expected 1 fire, got %d", n)
	}
	if n := atomic.LoadInt32(&ticks); n != 3 {
		t.Errorf("Expected 3 ticks, got %d", n)
	}
}

func TestRefreshTimerStopCancels(t *testing.T) {
	var fires int32

	rt := StartRefreshTimer(time.Hour, 10*time.Millisecond,
		func(remaining time.Duration) {},
		func() { atomic.AddInt32(&fires, 1) },
	)
	rt.Stop()

	select {
	case <-rt.Done():
	case <-time.After(time.Second):
		t.Fatal("Stop did not end the countdown goroutine")
	}

	if n := atomic.LoadInt32(&fires); n != 0 {
		t.Errorf("Cancelled timer fired %d times", n)
	}

	// Stop is idempotent.
	rt.Stop()
}

func TestRefreshTimerWidgetUpdatesViaDo(t *testing.T) {
	// Callbacks run on the countdown goroutine, so widget mutation has
	// to be marshalled onto the event loop.
	test.NewApp()
	defer test.NewApp()

	label := widget.NewLabel("")
	rt := StartRefreshTimer(20*time.Millisecond, 10*time.Millisecond,
		func(remaining time.Duration) {
			fyne.Do(func() {
				label.SetText(formatCountdown(remaining))
			})
		},
		func() {
			fyne.Do(func() {
				label.SetText("refreshed")
			})
		},
	)

	select {
	case <-rt.Done():
	case <-time.After(time.Second):
		t.Fatal("Countdown did not finish")
	}

	deadline := time.Now().Add(time.Second)
	for label.Text != "refreshed" {
		if time.Now().After(deadline) {
			t.Fatalf("Label never updated, last text %q", label.Text)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Minute, "05:00"},
		{90 * time.Second, "01:30"},
		{time.Second, "00:01"},
		{0, "00:00"},
		{-time.Second, "00:00"},
	}
	for _, c := range cases {
		if got := formatCountdown(c.in); got != c.want {
			t.Errorf("formatCountdown(%v): expected %s, got %s", c.in, c.want, got)
		}
	}
}
