package tools

import (
	"context"
	"time"
)

// CurrentTime reports the current server time in UTC.
//
// The timezone argument is part of the schema but has no effect on the
// output.
type CurrentTime struct {
	Now func() time.Time
}

func (CurrentTime) Descriptor() Descriptor {
	return Descriptor{
		Name:        "get_current_time",
		Description: "Returns the current server time",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"timezone": map[string]any{
					"type":        "string",
					"description": "Timezone (optional, defaults to UTC)",
					"default":     "UTC",
				},
			},
		},
	}
}

func (t CurrentTime) Call(_ context.Context, _ Arguments) (*Result, error) {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	stamp := FormatTimestamp(now())
	return textResult("Current server time: "+stamp, map[string]any{
		"result":   stamp,
		"timezone": "UTC",
	}), nil
}

// FormatTimestamp renders t as an ISO-8601 UTC timestamp.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
