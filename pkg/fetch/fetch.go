// Package fetch downloads image streams over HTTP on a bounded pool of
// worker goroutines.
package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/TkwkT/CircleImageView/pkg/errors"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultTimeout is the connect and read timeout applied when Options
	// leaves them zero.
	DefaultTimeout = 8 * time.Second
	// DefaultMaxConcurrent is the number of requests allowed in flight
	// when Options leaves it zero.
	DefaultMaxConcurrent = 4
)

var (
	// ErrStatus is wrapped by errors for non-2xx responses.
	ErrStatus = stderrors.New("unexpected HTTP status")
	// ErrReadTimeout is returned by a body that received no data within
	// the read timeout.
	ErrReadTimeout = stderrors.New("read timed out")
)

// Options configures a Fetcher.
type Options struct {
	// ConnectTimeout bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration
	// ReadTimeout bounds the wait for response headers and the gap
	// between body reads.
	ReadTimeout time.Duration
	// MaxConcurrent bounds requests in flight; further requests queue.
	MaxConcurrent int64
	// Client replaces the default client. ReadTimeout still applies to
	// response bodies.
	Client *http.Client
}

// Fetcher issues GET requests with fixed timeouts.
type Fetcher struct {
	client      *http.Client
	readTimeout time.Duration
	sem         *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a fetcher, applying defaults for zero options.
func New(opts Options) *Fetcher {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultTimeout
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	client := opts.Client
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		transport.TLSHandshakeTimeout = opts.ConnectTimeout
		transport.ResponseHeaderTimeout = opts.ReadTimeout
		client = &http.Client{Transport: transport}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Fetcher{
		client:      client,
		readTimeout: opts.ReadTimeout,
		sem:         semaphore.NewWeighted(opts.MaxConcurrent),
		ctx:         ctx,
		cancel:      cancel,
	}
}

var defaultFetcher = sync.OnceValue(func() *Fetcher { return New(Options{}) })

// Default returns a process-wide fetcher with default options.
func Default() *Fetcher {
	return defaultFetcher()
}

// Get issues a GET request and returns the response body. Non-2xx
// responses are errors. The caller must close the body.
func (f *Fetcher) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, &errors.ImageError{Op: "fetch.Get", Kind: errors.KindNetwork, URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		cancel()
		return nil, &errors.ImageError{Op: "fetch.Get", Kind: errors.KindNetwork, URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return nil, &errors.ImageError{
			Op:   "fetch.Get",
			Kind: errors.KindNetwork,
			URL:  url,
			Err:  fmt.Errorf("%w: %s", ErrStatus, resp.Status),
		}
	}

	return newIdleTimeoutBody(resp.Body, f.readTimeout, cancel), nil
}

// Fetch runs a GET on a worker goroutine and calls fn with the response
// body, or with a nil body and the error after reporting it. The body is
// closed when fn returns. Requests beyond MaxConcurrent wait for a free
// slot. Canceling ctx, the returned Request or the Fetcher aborts the
// request; fn still runs with the cancellation error.
func (f *Fetcher) Fetch(ctx context.Context, url string, fn func(body io.Reader, err error)) *Request {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(f.ctx, cancel)
	r := &Request{url: url, cancel: cancel, done: make(chan struct{})}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer close(r.done)
		defer stop()
		defer cancel()
		defer errors.Recover("fetch.worker")

		if err := f.sem.Acquire(ctx, 1); err != nil {
			fn(nil, &errors.ImageError{Op: "fetch.Fetch", Kind: errors.KindNetwork, URL: url, Err: err})
			return
		}
		defer f.sem.Release(1)

		body, err := f.Get(ctx, url)
		if err != nil {
			if ie, ok := err.(*errors.ImageError); ok && ctx.Err() == nil {
				errors.Report(ie)
			}
			fn(nil, err)
			return
		}
		defer body.Close()
		fn(body, nil)
	}()
	return r
}

// Close cancels every in-flight request and waits for the workers to exit.
func (f *Fetcher) Close() {
	f.cancel()
	f.wg.Wait()
}

// Request is a handle to an asynchronous fetch.
type Request struct {
	url    string
	cancel context.CancelFunc
	done   chan struct{}
}

// URL returns the requested URL.
func (r *Request) URL() string {
	return r.url
}

// Cancel aborts the request if it is still running.
func (r *Request) Cancel() {
	r.cancel()
}

// Done is closed after the completion callback returns.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the request completes or ctx is done.
func (r *Request) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
