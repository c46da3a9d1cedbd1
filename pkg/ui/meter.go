package ui

import (
	"math"
	"sync"
	"time"
)

const (
	// riseDuration is how long the displayed value takes to climb from 0 to
	// its target, independent of the target's magnitude.
	riseDuration = 1200 * time.Millisecond

	// frameInterval is the animation tick rate.
	frameInterval = 40 * time.Millisecond
)

// ConfidenceMeter animates a displayed confidence value from 0 to a target.
// The animation is purely presentational; nothing reads the meter to make
// decisions. The latest target always wins: re-arming snaps the value back
// to 0 and abandons any animation in flight.
type ConfidenceMeter struct {
	mu       sync.Mutex
	value    int
	target   int
	stopChan chan struct{}

	rise  time.Duration
	frame time.Duration
}

// NewConfidenceMeter creates a meter with the standard timing.
func NewConfidenceMeter() *ConfidenceMeter {
	return &ConfidenceMeter{rise: riseDuration, frame: frameInterval}
}

// NewConfidenceMeterWithTiming creates a meter with custom timing. Used by
// tests that cannot afford the full rise.
func NewConfidenceMeterWithTiming(rise, frame time.Duration) *ConfidenceMeter {
	return &ConfidenceMeter{rise: rise, frame: frame}
}

// AnimateTo snaps the displayed value to 0 and ramps it linearly to target
// over the rise duration. A second call supersedes the first.
func (m *ConfidenceMeter) AnimateTo(target int) {
	if target < 0 {
		target = 0
	}
	if target > 100 {
		target = 100
	}

	m.mu.Lock()
	if m.stopChan != nil {
		close(m.stopChan)
	}
	stop := make(chan struct{})
	m.stopChan = stop
	m.value = 0
	m.target = target
	m.mu.Unlock()

	go m.animate(stop, target, time.Now())
}

// Value returns the currently displayed value.
func (m *ConfidenceMeter) Value() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Target returns the value the meter is heading toward.
func (m *ConfidenceMeter) Target() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

// Reset stops any animation and clears the displayed value to 0.
func (m *ConfidenceMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopChan != nil {
		close(m.stopChan)
		m.stopChan = nil
	}
	m.value = 0
	m.target = 0
}

// Stop releases the animation goroutine, freezing the displayed value.
func (m *ConfidenceMeter) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopChan != nil {
		close(m.stopChan)
		m.stopChan = nil
	}
}

// animate runs the ramp for one arming of the meter. The stop channel
// identifies the arming; once it no longer matches the meter's current
// channel the goroutine exits without touching the value.
func (m *ConfidenceMeter) animate(stop chan struct{}, target int, started time.Time) {
	ticker := time.NewTicker(m.frame)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			if m.stopChan != stop {
				m.mu.Unlock()
				return
			}
			progress := float64(time.Since(started)) / float64(m.rise)
			if progress >= 1 {
				m.value = target
				m.stopChan = nil
				m.mu.Unlock()
				return
			}
			m.value = int(math.Round(float64(target) * progress))
			m.mu.Unlock()
		}
	}
}
