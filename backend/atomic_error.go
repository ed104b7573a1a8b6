package backend

import "sync/atomic"

// atomicError keeps the first error stored into it.
type atomicError struct {
	err atomic.Pointer[error]
}

// TryStore records err unless an error has already been recorded. It reports
// whether err was stored.
func (a *atomicError) TryStore(err error) bool {
	if err == nil {
		return false
	}
	return a.err.CompareAndSwap(nil, &err)
}

func (a *atomicError) Load() error {
	if p := a.err.Load(); p != nil {
		return *p
	}
	return nil
}
