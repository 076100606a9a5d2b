// Package audio provides loudness sources for the game loop.
// Every source satisfies core.LevelSource and never blocks the caller.
package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
)

// Meter defaults
const (
	DefaultWindow = 1024 // Samples per RMS window
	DefaultGain   = 4.0
)

// Meter measures the RMS loudness of signed 16-bit little-endian mono PCM.
// Decoding runs in a background goroutine; Level returns the latest window.
type Meter struct {
	r      io.Reader
	window int
	gain   float64

	bits atomic.Uint64 // math.Float64bits of the latest level

	mu      sync.Mutex
	err     error
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMeter creates a meter over r. Non-positive window or gain select the defaults.
func NewMeter(r io.Reader, window int, gain float64) *Meter {
	if window <= 0 {
		window = DefaultWindow
	}
	if gain <= 0 {
		gain = DefaultGain
	}
	return &Meter{
		r:      r,
		window: window,
		gain:   gain,
		done:   make(chan struct{}),
	}
}

// Start begins decoding. Calls after the first are no-ops.
func (m *Meter) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.started = true

	ctx, m.cancel = context.WithCancel(ctx)
	go m.run(ctx)
}

func (m *Meter) run(ctx context.Context) {
	defer close(m.done)
	buf := make([]byte, m.window*2)

	for ctx.Err() == nil {
		n, err := io.ReadFull(m.r, buf)
		if n >= 2 && ctx.Err() == nil {
			m.store(RMS(buf[:n], m.gain))
		}
		if err != nil {
			m.store(0)
			if ctx.Err() == nil {
				m.setErr(fmt.Errorf("audio: read pcm: %w", err))
			}
			return
		}
	}
	m.store(0)
}

func (m *Meter) store(level float64) {
	m.bits.Store(math.Float64bits(level))
}

func (m *Meter) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Level returns the loudness of the most recent window in [0, 1].
func (m *Meter) Level() float64 {
	return math.Float64frombits(m.bits.Load())
}

// Err returns the error that stopped decoding, if any. io.EOF is wrapped, not hidden.
func (m *Meter) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Done is closed once the decoding goroutine exits.
func (m *Meter) Done() <-chan struct{} {
	return m.done
}

// Close stops decoding and closes the underlying reader if it is an io.Closer.
func (m *Meter) Close() error {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.store(0)
	if c, ok := m.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("audio: close pcm: %w", err)
		}
	}
	return nil
}

// RMS returns the gain-scaled root mean square of a PCM buffer, clamped to [0, 1].
// A trailing odd byte is ignored.
func RMS(pcm []byte, gain float64) float64 {
	n := len(pcm) / 2
	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		s := float64(int16(binary.LittleEndian.Uint16(pcm[2*i:]))) / 32768
		sum += s * s
	}
	rms := math.Sqrt(sum/float64(n)) * gain
	return math.Min(rms, 1)
}
