package plugin

import (
	"context"

	"rezdyLink/internal/modules/bookings/application/port"
	"rezdyLink/internal/modules/bookings/domain"
)

// EventFanout forwards each booking event to every configured sink. A nil or
// empty fanout is a valid sink that drops events.
type EventFanout struct {
	sinks []port.EventSink
}

func NewEventFanout(sinks ...port.EventSink) *EventFanout {
	kept := make([]port.EventSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			kept = append(kept, sink)
		}
	}
	return &EventFanout{sinks: kept}
}

func (f *EventFanout) PublishBookingEvent(ctx context.Context, event domain.Event) {
	if f == nil {
		return
	}
	for _, sink := range f.sinks {
		sink.PublishBookingEvent(ctx, event)
	}
}
