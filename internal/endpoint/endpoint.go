package endpoint

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/lockkeys/internal/hid"
)

// Endpoint receives keyboard reports.
type Endpoint interface {
	Send(ctx context.Context, r hid.Snapshot) error
}

// Kind selects an endpoint implementation.
type Kind string

const (
	KindVirtual Kind = "virtual"
	KindOS      Kind = "os"
)

// ParseKind parses an endpoint name. The empty string selects the
// virtual host.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindVirtual:
		return KindVirtual, nil
	case KindOS:
		return KindOS, nil
	}
	return "", fmt.Errorf("unknown endpoint %q (want %q or %q)", s, KindVirtual, KindOS)
}

// diff returns the usages present in cur but not in prev.
func diff(cur, prev []hid.Usage) []hid.Usage {
	var out []hid.Usage
	for _, u := range cur {
		found := false
		for _, p := range prev {
			if p == u {
				found = true
				break
			}
		}
		if !found {
			out = append(out, u)
		}
	}
	return out
}
