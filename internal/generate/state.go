package generate

import "qrfolio-backend/internal/shared/telemetry"

// State is a step of a single generation request.
type State string

const (
	StateReceived    State = "received"
	StateValidated   State = "validated"
	StatePersisted   State = "persisted"
	StateSynthesized State = "synthesized"
	StatePublished   State = "published"
	StateEncoded     State = "encoded"
	StateResponded   State = "responded"
	StateFailed      State = "failed"
)

// Transition formats a state change the way the request logger records it.
func Transition(from, to State) string {
	return string(from) + "->" + string(to)
}

type tracker struct {
	requestID string
	state     State
	last      string
}

func newTracker(requestID string) *tracker {
	return &tracker{requestID: requestID, state: StateReceived}
}

func (t *tracker) to(next State) {
	t.last = Transition(t.state, next)
	telemetry.Info("generate.transition", map[string]any{
		"request_id": t.requestID,
		"from":       string(t.state),
		"to":         string(next),
	})
	t.state = next
}
