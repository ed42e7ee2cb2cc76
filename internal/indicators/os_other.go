//go:build !linux && !windows

package indicators

// NewOSReader is not available on this platform.
func NewOSReader() (Reader, error) {
	return nil, ErrUnsupported
}
