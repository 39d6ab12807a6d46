package metrics

import (
	"time"

	obserrors "github.com/skillhub/skills-dashboard/internal/observability/errors"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// Session transitions.
const (
	TransitionLogin        = "login"
	TransitionLogout       = "logout"
	TransitionUnauthorized = "unauthorized"
	TransitionSwitchView   = "switch_view"
)

// EmitGuardDecision counts a route guard outcome.
func EmitGuardDecision(sink statsd.Sink, decision string) {
	if sink == nil {
		return
	}
	sink.Count("guard.decision", 1, map[string]string{"decision": decision})
}

// SessionMetric captures a session state change.
type SessionMetric struct {
	Transition string
	Role       string
	Err        error
}

// EmitSessionTransition counts a session state change tagged with its outcome.
func EmitSessionTransition(sink statsd.Sink, in SessionMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"transition": in.Transition,
		"result":     ResultSuccess,
	}
	if in.Role != "" {
		tags["role"] = in.Role
	}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count("session.transition", 1, tags)
}

// BackendMetric captures one outbound call to the skills backend.
type BackendMetric struct {
	Method   string
	Endpoint string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitBackendRequest emits a counter and timing for an outbound backend call.
// Endpoint should be the route template, not the concrete path.
func EmitBackendRequest(sink statsd.Sink, in BackendMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"method":   in.Method,
		"endpoint": in.Endpoint,
		"result":   ResultSuccess,
	}
	if in.Err != nil || in.Status >= 400 {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("backend.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("backend.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
