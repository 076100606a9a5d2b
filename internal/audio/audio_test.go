package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/voicehop/internal/core"
)

var (
	_ core.LevelSource = (*Meter)(nil)
	_ core.LevelSource = (*Manual)(nil)
)

// square encodes n samples alternating between +amp and -amp.
func square(n int, amp int16) []byte {
	buf := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		s := amp
		if i%2 == 1 {
			s = -amp
		}
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name string
		pcm  []byte
		gain float64
		want float64
	}{
		{"empty", nil, 1, 0},
		{"single byte", []byte{0x7f}, 1, 0},
		{"silence", square(64, 0), 1, 0},
		{"half scale", square(64, 16384), 1, 0.5},
		{"half scale with gain", square(64, 16384), 1.5, 0.75},
		{"clamped", square(64, 16384), 4, 1},
		{"odd trailing byte", append(square(64, 16384), 0xff), 1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.pcm, tt.gain); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RMS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func waitDone(t *testing.T, m *Meter) {
	t.Helper()
	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("meter did not stop")
	}
}

func TestMeterEOFLeavesSilence(t *testing.T) {
	m := NewMeter(bytes.NewReader(square(256, 16384)), 64, 1)
	m.Start(context.Background())
	waitDone(t, m)

	if m.Level() != 0 {
		t.Errorf("Level() after EOF = %v, want 0", m.Level())
	}
	if !errors.Is(m.Err(), io.EOF) {
		t.Errorf("Err() = %v, want wrapped io.EOF", m.Err())
	}
}

func TestMeterPublishesLevel(t *testing.T) {
	pr, pw := io.Pipe()
	m := NewMeter(pr, 64, 1)
	m.Start(context.Background())
	m.Start(context.Background()) // second start is a no-op

	go func() {
		_, _ = pw.Write(square(64, 16384))
	}()

	deadline := time.Now().Add(2 * time.Second)
	for m.Level() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("level never published")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := m.Level(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level() = %v, want 0.5", got)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	waitDone(t, m)
	if m.Level() != 0 {
		t.Errorf("Level() after Close = %v, want 0", m.Level())
	}
}

func TestMeterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()

	m := NewMeter(pr, 16, 0)
	m.Start(ctx)
	cancel()
	// Unblock the pending read so the goroutine observes the cancellation.
	go func() { _, _ = pw.Write(square(16, 100)) }()

	waitDone(t, m)
	if m.Err() != nil {
		t.Errorf("Err() after cancel = %v, want nil", m.Err())
	}
}

func TestManual(t *testing.T) {
	m := NewManual(0.5, 0.5)
	if m.Level() != 0 {
		t.Fatalf("initial Level() = %v", m.Level())
	}

	m.Bump()
	if m.Level() != 0.5 {
		t.Errorf("after one Bump Level() = %v, want 0.5", m.Level())
	}
	m.Bump()
	if m.Level() != 0.75 {
		t.Errorf("after two Bumps Level() = %v, want 0.75", m.Level())
	}

	m.Tick()
	if m.Level() != 0.375 {
		t.Errorf("after Tick Level() = %v, want 0.375", m.Level())
	}

	for i := 0; i < 100; i++ {
		m.Tick()
	}
	if m.Level() != 0 {
		t.Errorf("after decay Level() = %v, want 0", m.Level())
	}

	for i := 0; i < 50; i++ {
		m.Bump()
		if m.Level() > 1 {
			t.Fatalf("Level() = %v exceeds 1", m.Level())
		}
	}
	m.Reset()
	if m.Level() != 0 {
		t.Errorf("after Reset Level() = %v, want 0", m.Level())
	}
}

func TestNewManualDefaults(t *testing.T) {
	m := NewManual(0, 2)
	if m.step != DefaultStep || m.decay != DefaultDecay {
		t.Errorf("step/decay = %v/%v, want defaults", m.step, m.decay)
	}
}
