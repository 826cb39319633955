package providers

import "strings"

type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
	ErrorContext   ErrorType = "context"
)

// ClassifyError buckets a provider failure for the fallback audit log.
// Classification is string-based because the vendors only expose message
// text for most failure modes.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "quota"), strings.Contains(e, "credit"), strings.Contains(e, "insufficient_quota"):
		return ErrorQuota
	case strings.Contains(e, "rate"), strings.Contains(e, "429"):
		return ErrorRate
	// "context deadline exceeded" is a timeout, not a context-length error.
	case strings.Contains(e, "timeout"), strings.Contains(e, "deadline"),
		strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"),
		strings.Contains(e, "overloaded"):
		return ErrorTransient
	case strings.Contains(e, "context"), strings.Contains(e, "too long"), strings.Contains(e, "maximum length"):
		return ErrorContext
	default:
		return ErrorPermanent
	}
}
