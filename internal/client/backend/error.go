package backend

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	go_json "github.com/goccy/go-json"
)

type APIError struct {
	StatusCode int
	Message    string
	// MinVersion is set when the proxy rejected this client's version.
	MinVersion string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dealdesk api: %d %s", e.StatusCode, e.Message)
}

// IsIncompatibleVersion reports whether err means the client must upgrade.
func IsIncompatibleVersion(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUpgradeRequired
}

func parseAPIError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	var errResp struct {
		Message    string `json:"message"`
		Error      string `json:"error"`
		MinVersion string `json:"min_version"`
	}

	if err := go_json.Unmarshal(body, &errResp); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}
	if msg == "" {
		msg = resp.Status
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		MinVersion: errResp.MinVersion,
	}
}
