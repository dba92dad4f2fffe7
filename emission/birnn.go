package emission

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// BiRNN is a bidirectional tanh RNN over learned embeddings with a
// linear projection into tag space. For an input sequence x of length L:
//
//	hF[t] = tanh(WxF·embed(x[t]) + WhF·hF[t-1] + BF)
//	hB[t] = tanh(WxB·embed(x[t]) + WhB·hB[t+1] + BB)
//	E[t]  = WOut·concat(hF[t], hB[t]) + BOut
//
// Emit is deterministic for fixed weights. The struct additionally keeps
// unexported activation and gradient caches so that Backward can run
// BPTT over the most recent forward pass; those caches are not part of
// the persisted state and belong to one goroutine at a time — concurrent
// trainers each take a Worker view.
type BiRNN struct {
	Cfg Config

	Embed [][]float64 // V×D embedding table

	WxF [][]float64 // H×D forward input weights
	WhF [][]float64 // H×H forward recurrent weights
	BF  []float64   // H   forward bias

	WxB [][]float64 // H×D backward input weights
	WhB [][]float64 // H×H backward recurrent weights
	BB  []float64   // H   backward bias

	WOut [][]float64 // T×2H output projection
	BOut []float64   // T   output bias

	lastSeq []int       // sequence of the cached forward pass
	hF, hB  [][]float64 // L×H cached hidden states
	grad    *gradients
}

// gradients accumulates ∂loss/∂weight between ZeroGrad and Step.
type gradients struct {
	embed      [][]float64
	wxF, whF   [][]float64
	bF         []float64
	wxB, whB   [][]float64
	bB         []float64
	wOut       [][]float64
	bOut       []float64
}

// New builds a BiRNN with seeded Gaussian initialization: unit-variance
// embeddings (the convention for embedding tables) and weight matrices
// scaled by 1/√fan-in so pre-activations start in tanh's linear regime.
// The same Config always yields the same network.
func New(cfg Config) (*BiRNN, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	randMat := func(rows, cols int, scale float64) [][]float64 {
		m := make([][]float64, rows)
		for i := range m {
			m[i] = make([]float64, cols)
			for j := range m[i] {
				m[i][j] = rng.NormFloat64() * scale
			}
		}
		return m
	}
	fanIn := func(cols int) float64 { return 1 / math.Sqrt(float64(cols)) }

	n := &BiRNN{
		Cfg:   cfg,
		Embed: randMat(cfg.VocabSize, cfg.EmbedDim, 1),
		WxF:   randMat(cfg.HiddenDim, cfg.EmbedDim, fanIn(cfg.EmbedDim)),
		WhF:   randMat(cfg.HiddenDim, cfg.HiddenDim, fanIn(cfg.HiddenDim)),
		BF:    make([]float64, cfg.HiddenDim),
		WxB:   randMat(cfg.HiddenDim, cfg.EmbedDim, fanIn(cfg.EmbedDim)),
		WhB:   randMat(cfg.HiddenDim, cfg.HiddenDim, fanIn(cfg.HiddenDim)),
		BB:    make([]float64, cfg.HiddenDim),
		WOut:  randMat(cfg.TagCount, 2*cfg.HiddenDim, fanIn(2*cfg.HiddenDim)),
		BOut:  make([]float64, cfg.TagCount),
	}

	return n, nil
}

// Worker returns a view of the network for one training goroutine. The
// view aliases the shared parameter slices, so its Step lands on the
// same weights as everyone else's, while the activation cache and the
// gradient accumulator stay private to the view. Emit/Backward pairs
// running on different workers therefore never clobber each other's
// cached forward pass; only the parameter writes interleave.
func (n *BiRNN) Worker() *BiRNN {
	return &BiRNN{
		Cfg:   n.Cfg,
		Embed: n.Embed,
		WxF:   n.WxF,
		WhF:   n.WhF,
		BF:    n.BF,
		WxB:   n.WxB,
		WhB:   n.WhB,
		BB:    n.BB,
		WOut:  n.WOut,
		BOut:  n.BOut,
	}
}

// Emit maps an integer-encoded sequence to its L×T emission matrix and
// caches the activations for a subsequent Backward call. The cache
// belongs to this instance; concurrent trainers must each Emit on their
// own Worker view.
func (n *BiRNN) Emit(seq []int) ([][]float64, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	for t, tok := range seq {
		if tok < 0 || tok >= n.Cfg.VocabSize {
			return nil, fmt.Errorf("%w: token %d at position %d (vocab %d)",
				ErrTokenOutOfRange, tok, t, n.Cfg.VocabSize)
		}
	}
	length, hidden := len(seq), n.Cfg.HiddenDim

	// Forward direction, left to right.
	hF := make([][]float64, length)
	for t := 0; t < length; t++ {
		var prev []float64
		if t > 0 {
			prev = hF[t-1]
		}
		hF[t] = n.cell(n.WxF, n.WhF, n.BF, n.Embed[seq[t]], prev)
	}

	// Backward direction, right to left.
	hB := make([][]float64, length)
	for t := length - 1; t >= 0; t-- {
		var prev []float64
		if t < length-1 {
			prev = hB[t+1]
		}
		hB[t] = n.cell(n.WxB, n.WhB, n.BB, n.Embed[seq[t]], prev)
	}

	// Project concat(hF, hB) into tag space.
	out := make([][]float64, length)
	for t := range out {
		out[t] = make([]float64, n.Cfg.TagCount)
		for k := range out[t] {
			s := n.BOut[k]
			for j := 0; j < hidden; j++ {
				s += n.WOut[k][j]*hF[t][j] + n.WOut[k][hidden+j]*hB[t][j]
			}
			out[t][k] = s
		}
	}

	n.lastSeq = append(n.lastSeq[:0], seq...)
	n.hF, n.hB = hF, hB

	return out, nil
}

// cell computes tanh(Wx·x + Wh·prev + b); prev may be nil at a boundary.
func (n *BiRNN) cell(wx, wh [][]float64, b, x, prev []float64) []float64 {
	h := make([]float64, n.Cfg.HiddenDim)
	for i := range h {
		s := b[i]
		for j, v := range x {
			s += wx[i][j] * v
		}
		if prev != nil {
			for j, v := range prev {
				s += wh[i][j] * v
			}
		}
		h[i] = math.Tanh(s)
	}

	return h
}

// ZeroGrad clears the accumulated gradients. Call it before every
// training example so successive examples' gradients are not summed.
func (n *BiRNN) ZeroGrad() {
	zeroMat := func(rows, cols int) [][]float64 {
		m := make([][]float64, rows)
		for i := range m {
			m[i] = make([]float64, cols)
		}
		return m
	}
	cfg := n.Cfg
	n.grad = &gradients{
		embed: zeroMat(cfg.VocabSize, cfg.EmbedDim),
		wxF:   zeroMat(cfg.HiddenDim, cfg.EmbedDim),
		whF:   zeroMat(cfg.HiddenDim, cfg.HiddenDim),
		bF:    make([]float64, cfg.HiddenDim),
		wxB:   zeroMat(cfg.HiddenDim, cfg.EmbedDim),
		whB:   zeroMat(cfg.HiddenDim, cfg.HiddenDim),
		bB:    make([]float64, cfg.HiddenDim),
		wOut:  zeroMat(cfg.TagCount, 2*cfg.HiddenDim),
		bOut:  make([]float64, cfg.TagCount),
	}
}

// Backward accumulates gradients by backpropagation through time, given
// ∂loss/∂emissions for the sequence of the most recent Emit call.
func (n *BiRNN) Backward(seq []int, dE [][]float64) error {
	if n.grad == nil {
		n.ZeroGrad()
	}
	if len(n.lastSeq) != len(seq) {
		return ErrNoForward
	}
	for t, tok := range seq {
		if n.lastSeq[t] != tok {
			return ErrNoForward
		}
	}
	if len(dE) != len(seq) {
		return fmt.Errorf("%w: %d gradient rows for %d positions",
			ErrGradShape, len(dE), len(seq))
	}
	length, hidden := len(seq), n.Cfg.HiddenDim
	for t := range dE {
		if len(dE[t]) != n.Cfg.TagCount {
			return fmt.Errorf("%w: row %d has width %d, want %d",
				ErrGradShape, t, len(dE[t]), n.Cfg.TagCount)
		}
	}

	// 1) Output projection: dWOut, dBOut, and the per-position gradient
	//    flowing into each directional hidden state.
	dhF := make([][]float64, length) // ∂loss/∂hF[t] from the projection
	dhB := make([][]float64, length)
	for t := 0; t < length; t++ {
		dhF[t] = make([]float64, hidden)
		dhB[t] = make([]float64, hidden)
		for k := 0; k < n.Cfg.TagCount; k++ {
			g := dE[t][k]
			if g == 0 {
				continue
			}
			n.grad.bOut[k] += g
			for j := 0; j < hidden; j++ {
				n.grad.wOut[k][j] += g * n.hF[t][j]
				n.grad.wOut[k][hidden+j] += g * n.hB[t][j]
				dhF[t][j] += g * n.WOut[k][j]
				dhB[t][j] += g * n.WOut[k][hidden+j]
			}
		}
	}

	// 2) Forward RNN: unroll right to left, carrying ∂loss/∂hF[t] from
	//    the next step through the recurrent weights.
	carry := make([]float64, hidden)
	for t := length - 1; t >= 0; t-- {
		var prev []float64
		if t > 0 {
			prev = n.hF[t-1]
		}
		carry = n.cellBackward(n.WxF, n.WhF, n.grad.wxF, n.grad.whF, n.grad.bF,
			seq[t], prev, n.hF[t], dhF[t], carry)
	}

	// 3) Backward RNN: its recurrence points right, so the unroll runs
	//    left to right.
	carry = make([]float64, hidden)
	for t := 0; t < length; t++ {
		var prev []float64
		if t < length-1 {
			prev = n.hB[t+1]
		}
		carry = n.cellBackward(n.WxB, n.WhB, n.grad.wxB, n.grad.whB, n.grad.bB,
			seq[t], prev, n.hB[t], dhB[t], carry)
	}

	return nil
}

// cellBackward backpropagates one tanh cell: dh is the gradient arriving
// at h from the projection, carry the gradient arriving through the
// recurrence. It accumulates weight/bias/embedding gradients and returns
// the carry for the predecessor cell.
func (n *BiRNN) cellBackward(wx, wh, gwx, gwh [][]float64, gb []float64,
	tok int, prev, h, dh, carry []float64) []float64 {
	hidden := n.Cfg.HiddenDim
	x := n.Embed[tok]

	nextCarry := make([]float64, hidden)
	for i := 0; i < hidden; i++ {
		dpre := (dh[i] + carry[i]) * (1 - h[i]*h[i]) // tanh'
		if dpre == 0 {
			continue
		}
		gb[i] += dpre
		for j, v := range x {
			gwx[i][j] += dpre * v
			n.grad.embed[tok][j] += dpre * wx[i][j]
		}
		// At a boundary cell the initial hidden state is the zero vector:
		// no recurrent gradient to record and no predecessor to carry to.
		if prev != nil {
			for j, v := range prev {
				gwh[i][j] += dpre * v
				nextCarry[j] += dpre * wh[i][j]
			}
		}
	}

	return nextCarry
}

// Step applies one SGD + weight-decay step to every parameter, in place,
// then leaves the gradients untouched (callers ZeroGrad per example).
// Like Transitions.Update it is deliberately unsynchronized; concurrent
// trainers interleave at element granularity by design.
func (n *BiRNN) Step(lr, decay float64) {
	if n.grad == nil {
		return
	}
	stepMat := func(w, g [][]float64) {
		for i := range w {
			for j := range w[i] {
				w[i][j] -= lr * (g[i][j] + decay*w[i][j])
			}
		}
	}
	stepVec := func(w, g []float64) {
		for i := range w {
			w[i] -= lr * (g[i] + decay*w[i])
		}
	}
	stepMat(n.Embed, n.grad.embed)
	stepMat(n.WxF, n.grad.wxF)
	stepMat(n.WhF, n.grad.whF)
	stepVec(n.BF, n.grad.bF)
	stepMat(n.WxB, n.grad.wxB)
	stepMat(n.WhB, n.grad.whB)
	stepVec(n.BB, n.grad.bB)
	stepMat(n.WOut, n.grad.wOut)
	stepVec(n.BOut, n.grad.bOut)
}
