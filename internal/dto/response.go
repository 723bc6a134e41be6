package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// RedirectResponse accompanies a 3xx so API clients get the target without
// following it.
type RedirectResponse struct {
	BasicResponse
	Location string `json:"location"`
	ID       *int64 `json:"id,omitempty"`
}

func NewRedirectResponse(ok bool, details string, location string) RedirectResponse {
	return RedirectResponse{
		BasicResponse: NewBasicResponse(ok, details),
		Location:      location,
	}
}
