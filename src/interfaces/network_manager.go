package interfaces

import (
	"context"

	"widget-backend/src/models"
)

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for outbound HTTP requests.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a GET request to url with query params and extra headers.
	// Non-2xx answers are returned as *helpers.UpstreamStatusError.
	Get(ctx context.Context, url string, params map[string]string, headers map[string]string) (*models.MHTTPResponse, error)
}
