package img2ascii

import (
	"context"
	"image"
	"sync"
	"time"
)

// DefaultPreviewDelay is how long a Previewer waits for parameter changes
// to settle before converting.
const DefaultPreviewDelay = 100 * time.Millisecond

// PreviewResult is the outcome of one preview generation.
type PreviewResult struct {
	Generation uint64
	Grid       *Grid
	Surface    *image.RGBA
	Err        error
}

type previewRequest struct {
	generation uint64
	img        image.Image
	params     Params
	mode       ColorMode
}

// Previewer recomputes a preview whenever its inputs change. Updates are
// debounced, and a result is dropped instead of delivered if a newer
// Update arrived while it was being computed. Conversions are never
// interrupted midway.
type Previewer struct {
	conv    *Converter
	rast    *Rasterizer
	delay   time.Duration
	deliver func(PreviewResult)

	mu         sync.Mutex
	generation uint64
	pending    *previewRequest
	timer      *time.Timer
	closed     bool
}

// NewPreviewer creates a Previewer that hands each current result to
// deliver. deliver runs on a timer goroutine, or on the caller's goroutine
// for Flush. A non-positive delay selects DefaultPreviewDelay.
func NewPreviewer(
	conv *Converter,
	rast *Rasterizer,
	delay time.Duration,
	deliver func(PreviewResult),
) *Previewer {
	if delay <= 0 {
		delay = DefaultPreviewDelay
	}
	return &Previewer{
		conv:    conv,
		rast:    rast,
		delay:   delay,
		deliver: deliver,
	}
}

// Update schedules a preview of img and returns its generation number.
// Any preview still waiting for its delay is superseded.
func (p *Previewer) Update(img image.Image, params Params, mode ColorMode) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return p.generation
	}

	p.generation++
	req := &previewRequest{
		generation: p.generation,
		img:        img,
		params:     params,
		mode:       mode,
	}
	p.pending = req

	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, func() {
		p.run(req.generation)
	})

	return req.generation
}

// Generation returns the number of the most recent Update.
func (p *Previewer) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Flush computes the pending preview now, without waiting for the delay.
// It returns ctx.Err() if ctx is done before the work starts.
func (p *Previewer) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	var generation uint64
	if p.pending != nil {
		generation = p.pending.generation
	}
	p.mu.Unlock()

	if generation != 0 {
		p.run(generation)
	}
	return nil
}

// Close drops any pending preview and ignores later updates. A preview
// already being computed is discarded when it finishes.
func (p *Previewer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.pending = nil
	if p.timer != nil {
		p.timer.Stop()
	}
}

// run computes the pending request if it is still the one for generation.
func (p *Previewer) run(generation uint64) {
	p.mu.Lock()
	req := p.pending
	if req == nil || req.generation != generation || p.closed {
		p.mu.Unlock()
		return
	}
	p.pending = nil
	p.mu.Unlock()

	result := PreviewResult{Generation: req.generation}
	result.Grid, result.Err = p.conv.Convert(req.img, req.params)
	if result.Err == nil {
		result.Surface, result.Err = p.rast.Render(result.Grid, req.mode)
	}

	if !p.current(req.generation) {
		return
	}
	p.deliver(result)
}

func (p *Previewer) current(generation uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed && p.generation == generation
}
