package ioutil

import (
	"io"
	"sync"
)

// LockedReadCloser wraps a download stream and releases the per-key read
// lock when the stream is closed.
type LockedReadCloser struct {
	io.ReadCloser
	Lock *sync.RWMutex
}

func (l *LockedReadCloser) Close() error {
	err := l.ReadCloser.Close()
	l.Lock.RUnlock()
	return err
}

func NewLockedReadCloser(r io.ReadCloser, lock *sync.RWMutex) *LockedReadCloser {
	return &LockedReadCloser{ReadCloser: r, Lock: lock}
}
