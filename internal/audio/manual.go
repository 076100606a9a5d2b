package audio

// Manual defaults
const (
	DefaultStep  = 0.6
	DefaultDecay = 0.9
)

// Manual is a keyboard-driven loudness source for terminals without a microphone.
// Each Bump moves the level a step toward 1; each Tick decays it toward 0.
// It is not safe for concurrent use.
type Manual struct {
	level float64
	step  float64
	decay float64
}

// NewManual creates a manual source. Values outside (0, 1) select the defaults.
func NewManual(step, decay float64) *Manual {
	if step <= 0 || step > 1 {
		step = DefaultStep
	}
	if decay <= 0 || decay >= 1 {
		decay = DefaultDecay
	}
	return &Manual{step: step, decay: decay}
}

// Bump registers one shout.
func (m *Manual) Bump() {
	m.level += (1 - m.level) * m.step
}

// Tick decays the level once. Call it every simulation tick.
func (m *Manual) Tick() {
	m.level *= m.decay
	if m.level < 1e-4 {
		m.level = 0
	}
}

// Level returns the current loudness in [0, 1].
func (m *Manual) Level() float64 {
	return m.level
}

// Reset silences the source.
func (m *Manual) Reset() {
	m.level = 0
}
