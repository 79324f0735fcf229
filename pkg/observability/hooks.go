package observability

import (
	"log/slog"

	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// LogHooks reports node events on logger.
// Runs ending in domain.StatusError are logged at Warn, everything else at Debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunBegin: func(e *domain.NodeEvent) {
			logger.Debug("Run Begin", eventAttrs(e)...)
		},
		OnTick: func(e *domain.NodeEvent) {
			logger.Debug("Tick", append(eventAttrs(e), "status", e.Status.String())...)
		},
		OnRunEnd: func(e *domain.NodeEvent) {
			attrs := append(eventAttrs(e), "status", e.Status.String())
			if e.Status == domain.StatusError {
				logger.Warn("Run Errored", attrs...)
				return
			}
			logger.Debug("Run End", attrs...)
		},
		OnAbort: func(e *domain.NodeEvent) {
			logger.Debug("Run Aborted", eventAttrs(e)...)
		},
	}
}

func eventAttrs(e *domain.NodeEvent) []any {
	return []any{"frame", e.Frame, "index", e.Index, "type", e.NodeType}
}

// Combine returns hooks calling every non-nil hook of sets, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnRunBegin = chain(out.OnRunBegin, h.OnRunBegin)
		out.OnTick = chain(out.OnTick, h.OnTick)
		out.OnRunEnd = chain(out.OnRunEnd, h.OnRunEnd)
		out.OnAbort = chain(out.OnAbort, h.OnAbort)
	}
	return out
}

func chain(a, b func(*domain.NodeEvent)) func(*domain.NodeEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *domain.NodeEvent) {
		a(e)
		b(e)
	}
}
