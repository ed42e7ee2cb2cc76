//go:build !windows && !(linux && cgo)

package endpoint

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/hid"
)

// ErrOSUnsupported is returned by NewOSBridge where no injector exists.
var ErrOSUnsupported = errors.New("OS key injection unsupported on this platform")

// OSBridge is unavailable on this platform.
type OSBridge struct{}

// NewOSBridge always fails on this platform.
func NewOSBridge(logr.Logger) (*OSBridge, error) {
	return nil, ErrOSUnsupported
}

// Send implements Endpoint.
func (*OSBridge) Send(context.Context, hid.Snapshot) error {
	return ErrOSUnsupported
}
