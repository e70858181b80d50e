package algorithms

// maxHistorySlots bounds the memory of a FitnessHistory. Longer runs record
// every stride-th step.
const maxHistorySlots = 1 << 16

// FitnessHistory records the best fitness seen up to and including each step.
// Values are non-decreasing by construction.
type FitnessHistory struct {
	values []float64
	stride int
	filled int
	best   float64
	seen   bool
}

// NewFitnessHistory allocates slots for steps 0 through steps.
func NewFitnessHistory(steps int) *FitnessHistory {
	slots := max(steps+1, 1)
	stride := 1
	if slots > maxHistorySlots {
		stride = (slots + maxHistorySlots - 1) / maxHistorySlots
		slots = (slots + stride - 1) / stride
	}
	return &FitnessHistory{values: make([]float64, slots), stride: stride}
}

// Observe folds fitness into the running best and stores it at step.
func (h *FitnessHistory) Observe(step int, fitness float64) {
	if !h.seen || fitness > h.best {
		h.best = fitness
		h.seen = true
	}
	if step%h.stride != 0 {
		return
	}
	slot := step / h.stride
	if slot >= len(h.values) {
		return
	}
	h.values[slot] = h.best
	h.filled = max(h.filled, slot+1)
}

// Best returns the best fitness observed so far.
func (h *FitnessHistory) Best() float64 { return h.best }

// Stride returns the number of steps between recorded slots.
func (h *FitnessHistory) Stride() int { return h.stride }

// Values returns the recorded slots. The slice must not be modified.
func (h *FitnessHistory) Values() []float64 { return h.values[:h.filled] }

// SampleHistory returns roughly n evenly spaced values, taking every
// ceil(len/n)-th value starting with the first.
func SampleHistory(values []float64, n int) []float64 {
	if n <= 0 || len(values) == 0 {
		return nil
	}
	step := (len(values) + n - 1) / n
	out := make([]float64, 0, (len(values)+step-1)/step)
	for i := 0; i < len(values); i += step {
		out = append(out, values[i])
	}
	return out
}
