package snapcast

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// InvalidIDError reports an episode reference the host does not recognize.
type InvalidIDError struct {
	Ref string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%s is not a valid episode ID", e.Ref)
}

// APIError reports a non-success response from the host.
type APIError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: host returned %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: host returned %s: %s", e.Op, e.Status, e.Body)
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}
