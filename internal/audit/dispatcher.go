package audit

import "log"

type Event struct {
	AccountID    uint
	TeamMemberID *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.AccountID,
			ev.TeamMemberID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch is safe on a nil dispatcher; auditing is never a reason to
// fail the operation being audited.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// queued
	default:
		// queue full: drop the audit entry rather than block the request
		log.Println("audit queue full, dropping event")
	}
}
