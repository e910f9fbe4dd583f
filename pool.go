package texprep

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps automatic sizing. Builds are CPU-bound and short.
	MaxPoolSize = 16
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("app pool closed")

// AppPool hands out Apps built with the same builder and options, one per
// concurrent worker. Apps are created lazily on first acquire.
type AppPool struct {
	size    int
	builder string
	opts    []Option
	sem     chan *App
	mu      sync.Mutex
	created int
	closed  bool
}

// NewAppPool creates a pool with capacity for n Apps created with
// New(builder, opts...). The configuration is checked once up front so
// Acquire only fails after Close.
func NewAppPool(n int, builder string, opts ...Option) (*AppPool, error) {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	first, err := New(builder, opts...)
	if err != nil {
		return nil, err
	}

	p := &AppPool{
		size:    n,
		builder: builder,
		opts:    opts,
		sem:     make(chan *App, n),
		created: 1,
	}
	p.sem <- first
	return p, nil
}

// Acquire gets an App from the pool, creating one if needed.
// Blocks if all Apps are in use.
func (p *AppPool) Acquire() (*App, error) {
	select {
	case app, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return app, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		app, err := New(p.builder, p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return app, nil
	}
	p.mu.Unlock()

	app, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return app, nil
}

// Release returns an App to the pool. Releasing after Close drops it.
func (p *AppPool) Release(app *App) {
	if app == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- app
}

// Close stops the pool. Blocked and future Acquire calls return
// ErrPoolClosed.
func (p *AppPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.sem)
}

// Size returns the pool capacity.
func (p *AppPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containers), capped at MaxPoolSize.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
