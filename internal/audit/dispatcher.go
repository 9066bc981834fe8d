package audit

import (
	"sync"

	"go.uber.org/zap"
)

const (
	ActionBooked          = "appointment_booked"
	ActionBookingConflict = "appointment_booking_conflict"
	ActionCancelled       = "appointment_cancelled"
	ActionModified        = "appointment_modified"
	ActionModifyConflict  = "appointment_modify_conflict"

	EntityAppointment = "appointment"
)

const defaultQueueSize = 100

type Event struct {
	Action     string
	Entity     string
	EntityID   *uint
	Email      string
	DoctorName string
	TimeSlot   string
	Metadata   any
}

// Sink stores audit events. Record is only ever called from the dispatcher
// worker, one event at a time.
type Sink interface {
	Record(ev Event) error
}

// Dispatcher hands events to a Sink on a background worker so request
// handling never waits on the audit store.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, defaultQueueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Record(ev); err != nil {
			d.log.Warn("audit error",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks: when the queue is full or the dispatcher is closed
// the event is dropped. A nil Dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queued ones to be recorded.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
