package hub

import (
	"fmt"
	"strings"

	"github.com/esri/hub.go/pkg/request"
)

// APIError is the portal's JSON error envelope, surfaced by every gateway
// when a call reaches the portal but is rejected at the API level.
type APIError = request.APIError

// EditResult is one entry of a bulk edit response, as returned by
// endpoints that update several records in a single call.
type EditResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CheckResults inspects a bulk edit response and returns an error only
// when every attempted edit failed. Identical failure messages are
// collapsed into one so a uniform rejection reads as a single cause.
// Mixed or all-successful results return nil; partial failure is the
// caller's data to interpret.
func CheckResults(results []EditResult) error {
	if len(results) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	messages := []string{}
	for _, r := range results {
		if r.Success {
			return nil
		}
		if _, ok := seen[r.Error]; !ok && r.Error != "" {
			seen[r.Error] = struct{}{}
			messages = append(messages, r.Error)
		}
	}

	if len(messages) == 0 {
		return fmt.Errorf("all %d edits failed", len(results))
	}
	return fmt.Errorf("all %d edits failed: %s", len(results), strings.Join(messages, "; "))
}
