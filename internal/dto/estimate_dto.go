package dto

import (
	"pc-estimate-be/pkg/parts"
)

type EstimateQueryRequest struct {
	SessionId string `json:"session_id" validate:"required,min=1,max=100"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

type EstimateQueryResponse struct {
	SessionId string          `json:"session_id"`
	Estimate  *parts.Estimate `json:"estimate,omitempty"`
	// ReplyRaw carries the generator's free-text answer when no
	// structured estimate could be recovered.
	ReplyRaw string `json:"reply_raw,omitempty"`
}

type ShareEstimateRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Title     string `json:"title" validate:"required,min=1,max=255"`
}
