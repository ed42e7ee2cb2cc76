package events

import (
	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/hid"
)

// TopicIndicatorsChanged is raised when the host reports new lock LEDs.
const TopicIndicatorsChanged event.Topic = "indicators.changed"

// IndicatorsChanged carries the host's lock LED bitmask before and after
// an output report.
type IndicatorsChanged struct {
	Previous hid.Indicators
	Current  hid.Indicators
}

// NewIndicatorsChanged builds the bus event for an indicator update.
func NewIndicatorsChanged(prev, cur hid.Indicators) event.Event[IndicatorsChanged] {
	return event.NewEvent(TopicIndicatorsChanged, IndicatorsChanged{Previous: prev, Current: cur}, "host")
}
