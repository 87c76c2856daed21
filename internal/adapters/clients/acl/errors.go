package acl

import (
	"net/http"

	"github.com/jsamuelsen/quote-widget/internal/domain"
)

// MapHTTPError translates a client result into a domain error.
//
// Parameters:
//   - resp: The HTTP response (may be nil if clientErr is set)
//   - clientErr: Any error from the HTTP client (may be nil)
//   - serviceName: Name of the external service for error context
//
// Returns nil for 2xx responses, a domain.TransportError when no response was
// received, and a domain.StatusError for every other status.
func MapHTTPError(resp *http.Response, clientErr error, serviceName string) error {
	if clientErr != nil {
		return domain.NewTransportError(serviceName, clientErr)
	}

	if resp == nil {
		return domain.NewTransportError(serviceName, errNoResponse)
	}

	if isSuccess(resp.StatusCode) {
		return nil
	}

	return domain.NewStatusError(serviceName, resp.StatusCode)
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
