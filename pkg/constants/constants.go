package constants

const (
	// RequestIDLength is the length of the generated X-Request-ID value
	// attached to every portal request.
	RequestIDLength = 16

	// FormatJSON is the response format requested from every portal
	// endpoint via the `f` parameter.
	FormatJSON = "json"
)
