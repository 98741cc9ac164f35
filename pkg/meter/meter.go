// Package meter wraps an io.Reader with a known total size and tracks how
// much of it has been consumed, exposing the read fraction, the observed
// throughput and an estimated time to completion.
package meter

import (
	"io"
	"sync/atomic"
	"time"
)

// Reader is a pass-through io.Reader that counts the bytes flowing out of
// the wrapped source. Reads are delegated unchanged, so it is a drop-in
// substitute for the source anywhere an io.Reader is expected.
//
// The counter is atomic so a reporting goroutine may poll Fraction or ETA
// while another goroutine drives the reads. The wrapper itself is still
// single-consumer: concurrent Read calls need external locking.
type Reader struct {
	inner io.Reader
	total int64
	read  atomic.Int64
	clock Clock
	start time.Time
}

// Option configures a Reader at construction time.
type Option func(*Reader)

// WithClock replaces the system clock used for rate and ETA estimates.
func WithClock(c Clock) Option {
	return func(m *Reader) {
		m.clock = c
	}
}

// NewReader wraps r, presuming the source holds total bytes. The total is
// trusted as given and never re-validated against the stream.
func NewReader(r io.Reader, total int64, opts ...Option) *Reader {
	m := &Reader{
		inner: r,
		total: total,
		clock: systemClock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.start = m.clock.Now()
	return m
}

// Read delegates to the wrapped source and adds whatever it returned to the
// counter. Count, error, short reads and EOF all pass through untouched.
func (m *Reader) Read(p []byte) (int, error) {
	n, err := m.inner.Read(p)
	m.read.Add(int64(n))
	return n, err
}

// BytesRead returns how many bytes have been read from the source so far.
func (m *Reader) BytesRead() int64 {
	return m.read.Load()
}

// Total returns the assumed total size given at construction.
func (m *Reader) Total() int64 {
	return m.total
}

// Inner returns the wrapped source.
func (m *Reader) Inner() io.Reader {
	return m.inner
}

// Close closes the wrapped source when it implements io.Closer, otherwise
// it is a no-op.
func (m *Reader) Close() error {
	if c, ok := m.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Fraction returns bytesRead/total. A zero total reports 1, signaling
// completion. The result may exceed 1 if the source turns out to be larger
// than the declared total; it is not clamped.
func (m *Reader) Fraction() float64 {
	if m.total <= 0 {
		return 1
	}
	return float64(m.read.Load()) / float64(m.total)
}

// Elapsed returns the time since the Reader was constructed.
func (m *Reader) Elapsed() time.Duration {
	return m.clock.Now().Sub(m.start)
}

// Rate returns the average throughput in bytes per second since
// construction. It reports 0 until at least one byte has been read and some
// time has passed.
func (m *Reader) Rate() float64 {
	elapsed := m.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.read.Load()) / elapsed
}

// ETA estimates the remaining duration until the total is reached, based on
// the average throughput so far. ok is false while the estimate is undefined,
// i.e. before any bytes have been read or any time has elapsed. Once the
// counter has reached the total the estimate is (0, true).
func (m *Reader) ETA() (eta time.Duration, ok bool) {
	remaining := m.total - m.read.Load()
	if remaining <= 0 {
		return 0, true
	}
	rate := m.Rate()
	if rate <= 0 {
		return 0, false
	}
	return time.Duration(float64(remaining) / rate * float64(time.Second)), true
}

// ProjectedEnd estimates the completion timestamp, current time plus ETA.
// ok mirrors ETA's.
func (m *Reader) ProjectedEnd() (end time.Time, ok bool) {
	eta, ok := m.ETA()
	if !ok {
		return time.Time{}, false
	}
	return m.clock.Now().Add(eta), true
}
