package instagram

import "fmt"

// APIError is a non-OK response from the private API.
type APIError struct {
	Endpoint   string
	StatusCode int
	ErrorType  string
	Message    string
}

func (e *APIError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("instagram: %s: %s (%s, http %d)", e.Endpoint, e.Message, e.ErrorType, e.StatusCode)
	}
	return fmt.Sprintf("instagram: %s: %s (http %d)", e.Endpoint, e.Message, e.StatusCode)
}

// AuthError covers rejected credentials, expired sessions and challenge
// walls. None of these are retryable without operator action.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("instagram auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("instagram auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UploadError reports which step of a media publish failed: rupload,
// cover, configure or story.
type UploadError struct {
	Stage string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("instagram upload (%s): %v", e.Stage, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
