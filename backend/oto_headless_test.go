//go:build headless

package backend

import (
	"errors"
	"testing"
)

func TestNewOtoHeadless(t *testing.T) {
	_, err := NewOto(&rampStream{}, 44100, 0, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("NewOto() error = %v, want ErrUnavailable", err)
	}
}
