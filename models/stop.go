package models

import (
	"strings"

	"github.com/rickchristie/reagent"
)

// maxNewTokens returns the token budget to send to a backend. Zero means the backend's default.
func maxNewTokens(s reagent.SamplingConfig) int {
	if s.MaxNewTokens < 0 {
		return 0
	}
	return s.MaxNewTokens
}

// settle feeds a completion that arrived in one piece into the monitor and cuts it right after
// the first marker, as if the backend had streamed it.
func settle(monitor *reagent.StopMonitor, completion string) string {
	if monitor == nil {
		return completion
	}
	if monitor.Observe(completion) != reagent.StopStopped {
		return completion
	}
	idx := strings.Index(completion, monitor.Marker())
	if idx < 0 {
		return completion
	}
	return completion[:idx+len(monitor.Marker())]
}
