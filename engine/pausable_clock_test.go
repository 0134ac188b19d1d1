package engine

import (
	"testing"
	"time"
)

// TestPausableClock verifies paused spans are removed from animation time
func TestPausableClock(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	pc := NewPausableClock(mock)

	mock.Advance(100 * time.Millisecond)
	if got := pc.Elapsed(); got != 100*time.Millisecond {
		t.Fatalf("elapsed = %v, want 100ms", got)
	}

	pc.Pause()
	pc.Pause() // idempotent
	frozen := pc.Now()
	mock.Advance(time.Second)
	if !pc.Now().Equal(frozen) {
		t.Error("time advanced while paused")
	}
	if got := pc.TotalPauseDuration(); got != time.Second {
		t.Errorf("ongoing pause = %v, want 1s", got)
	}

	pc.Resume()
	pc.Resume()
	if !pc.Now().Equal(frozen) {
		t.Error("resume should continue from the frozen time")
	}
	mock.Advance(50 * time.Millisecond)
	if got := pc.Elapsed(); got != 150*time.Millisecond {
		t.Errorf("elapsed = %v, want 150ms", got)
	}
	if !pc.RealTime().Equal(epoch.Add(1150 * time.Millisecond)) {
		t.Errorf("real time = %v", pc.RealTime())
	}
}

// TestMockTimeProvider verifies manual control
func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	mock.Advance(time.Minute)
	if !mock.Now().Equal(epoch.Add(time.Minute)) {
		t.Errorf("Advance: got %v", mock.Now())
	}
	mock.SetTime(epoch)
	if !mock.Now().Equal(epoch) {
		t.Errorf("SetTime: got %v", mock.Now())
	}
}

// TestMonotonicTimeProvider verifies the real provider moves forward
func TestMonotonicTimeProvider(t *testing.T) {
	p := NewMonotonicTimeProvider()
	t1 := p.Now()
	time.Sleep(2 * time.Millisecond)
	if !p.Now().After(t1) {
		t.Error("monotonic provider did not advance")
	}
}
