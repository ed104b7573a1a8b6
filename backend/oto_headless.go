//go:build headless

package backend

import (
	"fmt"
	"log/slog"
	"time"
)

// Oto is unavailable in headless builds.
type Oto struct{}

// NewOto always fails with ErrUnavailable in headless builds.
func NewOto(s Stream, sampleRate int, bufferSize time.Duration, logger *slog.Logger) (*Oto, error) {
	return nil, fmt.Errorf("%w: built with the headless tag", ErrUnavailable)
}

func (o *Oto) Err() error   { return nil }
func (o *Oto) Close() error { return nil }
