package models

// MHTTPResponse is a successful upstream answer.
type MHTTPResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}
