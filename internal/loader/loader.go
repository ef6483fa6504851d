// Package loader decodes assets off the render thread and hands the results
// back through a channel drained once per frame.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/philipparndt/gobuilding/internal/nav"
	"github.com/rs/zerolog"
)

// Recorder receives load timings.
type Recorder interface {
	LoadFinished(seconds float64, failed bool)
}

// Result is the outcome of one load. Request is the navigation it was
// started for; callers compare its generation before applying it.
type Result struct {
	Request nav.Request
	Asset   *Asset
	Err     error
	Elapsed time.Duration
}

// Loader runs one load per navigation. Starting a new load cancels the
// previous one, though a cancelled decode may still deliver a result.
type Loader struct {
	dir      string
	building string
	log      zerolog.Logger
	recorder Recorder
	results  chan Result

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates a loader for assets in dir. building is the file shown for
// the nav.Building sentinel.
func New(dir, building string, log zerolog.Logger) *Loader {
	return &Loader{
		dir:      dir,
		building: building,
		log:      log,
		results:  make(chan Result, 8),
		done:     make(chan struct{}),
	}
}

// SetRecorder reports load timings to r.
func (l *Loader) SetRecorder(r Recorder) {
	l.recorder = r
}

// Dir returns the asset directory
func (l *Loader) Dir() string {
	return l.dir
}

// Resolve maps an asset name to its file. The sentinel resolves to the
// building; any other name must stay inside the asset directory.
func (l *Loader) Resolve(target string) (string, error) {
	if target == nav.Building {
		return filepath.Join(l.dir, l.building), nil
	}
	if target == "" || !filepath.IsLocal(target) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return filepath.Join(l.dir, target), nil
}

// Load starts decoding req.Target in the background.
func (l *Loader) Load(req nav.Request) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.mu.Unlock()

	l.start(ctx, req)
}

// LoadBuilding decodes the building in the background. It is not tied to
// a navigation: it neither cancels nor can be cancelled by Load, and its
// result carries generation zero.
func (l *Loader) LoadBuilding() {
	l.start(context.Background(), nav.Request{Target: nav.Building})
}

func (l *Loader) start(ctx context.Context, req nav.Request) {
	l.log.Debug().Str("target", req.Target).Uint64("generation", req.Generation).Msg("loading asset")

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.deliver(l.run(ctx, req))
	}()
}

func (l *Loader) run(ctx context.Context, req nav.Request) Result {
	start := time.Now()
	result := Result{Request: req}

	path, err := l.Resolve(req.Target)
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		result.Asset, err = Decode(ctx, req.Target, path)
	}
	if err == nil {
		err = ctx.Err()
	}

	result.Err = err
	result.Elapsed = time.Since(start)
	if result.Err != nil {
		result.Asset = nil
	}
	if l.recorder != nil {
		l.recorder.LoadFinished(result.Elapsed.Seconds(), result.Err != nil)
	}
	return result
}

func (l *Loader) deliver(r Result) {
	select {
	case l.results <- r:
	case <-l.done:
	}
}

// Poll returns a pending result without blocking.
func (l *Loader) Poll() (Result, bool) {
	select {
	case r := <-l.results:
		return r, true
	default:
		return Result{}, false
	}
}

// Close cancels the running load and waits for its goroutine.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	select {
	case <-l.done:
	default:
		close(l.done)
	}
	l.mu.Unlock()
	l.wg.Wait()
}
