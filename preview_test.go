package img2ascii

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

// recorder collects delivered preview results.
type recorder struct {
	mu      sync.Mutex
	results []PreviewResult
	ch      chan PreviewResult
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan PreviewResult, 16)}
}

func (r *recorder) deliver(res PreviewResult) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
	r.ch <- res
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func newTestPreviewer(t *testing.T, delay time.Duration) (*Previewer, *recorder) {
	t.Helper()
	rec := newRecorder()
	p := NewPreviewer(NewConverter(), newTestRasterizer(t), delay, rec.deliver)
	t.Cleanup(p.Close)
	return p, rec
}

func previewParams() Params {
	return Params{Columns: 8, Palette: NewPalette(CharsetSimple), Contrast: 1}
}

func TestPreviewerDebounce(t *testing.T) {
	p, rec := newTestPreviewer(t, 30*time.Millisecond)
	img := imageutil.CreateGradientImage(64, 32)

	var last uint64
	for i := 0; i < 5; i++ {
		last = p.Update(img, previewParams(), Monochrome)
	}
	if last != 5 || p.Generation() != 5 {
		t.Fatalf("Expected generation 5, got %d", last)
	}

	select {
	case res := <-rec.ch:
		if res.Generation != last {
			t.Errorf("Delivered generation %d, want %d", res.Generation, last)
		}
		if res.Err != nil {
			t.Fatalf("Preview failed: %v", res.Err)
		}
		if res.Grid == nil || res.Surface == nil {
			t.Fatal("Preview result is missing its grid or surface")
		}
		if res.Grid.Width != 8 || res.Grid.Height != 2 {
			t.Errorf("Preview grid is %dx%d, want 8x2", res.Grid.Width, res.Grid.Height)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for preview")
	}

	time.Sleep(100 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Errorf("Expected one delivery for a burst of updates, got %d", n)
	}
}

func TestPreviewerFlush(t *testing.T) {
	p, rec := newTestPreviewer(t, time.Hour)

	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("Flush with nothing pending: %v", err)
	}
	if rec.count() != 0 {
		t.Fatal("Flush with nothing pending should not deliver")
	}

	p.Update(imageutil.CreateSolidImage(32, 32, white), previewParams(), VintageGreen)
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if rec.count() != 1 {
		t.Fatalf("Flush should deliver synchronously, got %d results", rec.count())
	}
	res := <-rec.ch
	if res.Err != nil || res.Generation != 1 {
		t.Fatalf("Unexpected result: generation %d, err %v", res.Generation, res.Err)
	}
	if got := res.Grid.At(0, 0).Glyph; got != '@' {
		t.Errorf("White image should preview as '@', got %q", got)
	}

	// Nothing is left pending.
	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if rec.count() != 1 {
		t.Errorf("Second flush delivered again")
	}
}

func TestPreviewerFlushCanceled(t *testing.T) {
	p, rec := newTestPreviewer(t, time.Hour)
	p.Update(imageutil.CreateSolidImage(8, 8, white), previewParams(), Monochrome)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Flush(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if rec.count() != 0 {
		t.Error("Canceled flush should not deliver")
	}
}

func TestPreviewerDropsSuperseded(t *testing.T) {
	p, rec := newTestPreviewer(t, time.Hour)
	img := imageutil.CreateSolidImage(8, 8, black)

	first := p.Update(img, previewParams(), Monochrome)
	second := p.Update(img, previewParams(), Monochrome)

	p.run(first)
	if rec.count() != 0 {
		t.Fatal("A superseded generation was delivered")
	}

	p.run(second)
	if rec.count() != 1 {
		t.Fatalf("Expected the current generation to be delivered")
	}
	if res := <-rec.ch; res.Generation != second {
		t.Errorf("Delivered generation %d, want %d", res.Generation, second)
	}
}

func TestPreviewerReportsErrors(t *testing.T) {
	p, rec := newTestPreviewer(t, time.Hour)

	p.Update(nil, previewParams(), Monochrome)
	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	res := <-rec.ch
	if !errors.Is(res.Err, ErrImageDecode) {
		t.Errorf("Expected ErrImageDecode, got %v", res.Err)
	}

	bad := previewParams()
	bad.Columns = 0
	p.Update(imageutil.CreateSolidImage(8, 8, black), bad, Monochrome)
	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	res = <-rec.ch
	if !errors.Is(res.Err, ErrInvalidParameters) {
		t.Errorf("Expected ErrInvalidParameters, got %v", res.Err)
	}
	if res.Grid != nil || res.Surface != nil {
		t.Error("Failed preview should carry no grid or surface")
	}
}

func TestPreviewerClose(t *testing.T) {
	p, rec := newTestPreviewer(t, 10*time.Millisecond)
	img := imageutil.CreateSolidImage(8, 8, white)

	gen := p.Update(img, previewParams(), Monochrome)
	p.Close()

	if got := p.Update(img, previewParams(), Monochrome); got != gen {
		t.Errorf("Update after Close advanced the generation to %d", got)
	}
	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if n := rec.count(); n != 0 {
		t.Errorf("Closed previewer delivered %d results", n)
	}
}
