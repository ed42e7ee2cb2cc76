package capslock

import "errors"

var (
	// ErrIndexOutOfRange is returned when a controller's index does not
	// fit the registry.
	ErrIndexOutOfRange = errors.New("controller index out of range")

	// ErrSlotTaken is returned when two controllers share an index.
	ErrSlotTaken = errors.New("controller index already registered")

	// ErrInvalidLock is returned for a lock indicator without a toggle key.
	ErrInvalidLock = errors.New("lock indicator has no toggle key")

	// ErrUnknownPreset is returned by LookupPreset callers for a missing name.
	ErrUnknownPreset = errors.New("unknown preset")
)
