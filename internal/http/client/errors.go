package client

import "fmt"

// Classification buckets every gateway outcome into one of four categories so
// callers never inspect raw status codes.
type Classification int

const (
	ClassSuccess Classification = iota
	ClassClientError
	ClassServerError
	ClassNetworkError
)

func (c Classification) String() string {
	switch c {
	case ClassSuccess:
		return "success"
	case ClassClientError:
		return "client_error"
	case ClassServerError:
		return "server_error"
	case ClassNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// APIError is the gateway's normalized failure. UserMessage is always safe to
// display as-is.
type APIError struct {
	Class       Classification
	StatusCode  int
	UserMessage string
	Err         error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: %s (status %d): %s", e.Class, e.StatusCode, e.UserMessage)
	}
	return fmt.Sprintf("api: %s: %s", e.Class, e.UserMessage)
}

func (e *APIError) Unwrap() error { return e.Err }

const (
	msgNetwork = "Unable to connect to the server. Please check your internet connection."
	msgGeneric = "An error occurred. Please try again."
)

// userMessage derives a stable display message from a status code, preferring
// the server-supplied message where the product allows it.
func userMessage(status int, serverMsg string) string {
	switch status {
	case 400:
		return firstNonEmpty(serverMsg, "Invalid request. Please check your input and try again.")
	case 401:
		return "Your session has expired. Please log in again."
	case 403:
		return "You do not have permission to perform this action."
	case 404:
		return "The requested resource was not found."
	case 409:
		return firstNonEmpty(serverMsg, "This action conflicts with existing data.")
	case 422:
		return firstNonEmpty(serverMsg, "The provided data is invalid.")
	case 429:
		return "Too many requests. Please wait a moment and try again."
	case 500:
		return "Server error. Please try again later."
	case 502, 503, 504:
		return "Service temporarily unavailable. Please try again later."
	default:
		return firstNonEmpty(serverMsg, msgGeneric)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
