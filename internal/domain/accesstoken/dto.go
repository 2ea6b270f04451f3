package accesstoken

import "time"

type IssueRequest struct {
	Purpose    string `json:"purpose"`
	TTLSeconds int    `json:"ttl_seconds,omitempty"`
}

type IssueResponse struct {
	Token     string    `json:"token"`
	Purpose   Purpose   `json:"purpose"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in"`
}

type ValidateRequest struct {
	Token string `json:"token"`
}

type ValidateResponse struct {
	Valid            bool    `json:"valid"`
	Purpose          Purpose `json:"purpose"`
	RemainingSeconds int     `json:"remaining_seconds"`
}
