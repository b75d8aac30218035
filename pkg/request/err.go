package request

import (
	"fmt"
	"strings"
)

// APIError is the portal's JSON error envelope. The portal returns it with
// an HTTP 200 status, so the transport decodes every response body against
// it before handing the body to the caller.
type APIError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("portal error %d: %s (%s)", e.Code, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("portal error %d: %s", e.Code, e.Message)
}
