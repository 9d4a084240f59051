package llm

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks every failure mode of the model backend: network
// errors, timeouts, non-2xx responses, and empty completions. Callers
// branch on it with errors.Is to decide the fallback path.
var ErrUnavailable = errors.New("model backend unavailable")

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, e.Body)
}
