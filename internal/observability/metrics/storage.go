package metrics

import (
	"time"

	obserrors "github.com/skillhub/skills-dashboard/internal/observability/errors"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
)

// PurgeMetric captures one sweep of expired client storage records.
type PurgeMetric struct {
	Backend string
	Removed int64
	Elapsed time.Duration
	Err     error
}

// EmitStoragePurge counts a purge sweep and, on success, the records it removed.
func EmitStoragePurge(sink statsd.Sink, in PurgeMetric) {
	if sink == nil {
		return
	}
	result := ResultSuccess
	switch {
	case in.Err != nil:
		result = ResultError
	case in.Removed == 0:
		result = ResultNoop
	}
	tags := map[string]string{"result": result}
	if in.Backend != "" {
		tags["backend"] = in.Backend
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("storage.purge", 1, tags)
	if in.Elapsed > 0 {
		sink.Timing("storage.purge_duration", in.Elapsed, CloneTags(tags))
	}
	if in.Err == nil && in.Removed > 0 {
		sink.Count("storage.records_purged", in.Removed, CloneTags(tags))
	}
}
