package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInternalServer   = errors.New("internal server error")
	ErrAdminOnly        = errors.New("requires admin role")
	ErrNoTeamForUser    = errors.New("user does not own a team")
	ErrTeamIDRequired   = errors.New("team_id is required when bidding as admin")
	ErrOverrideNotAdmin = errors.New("only admins can place override bids")
	ErrFinalizeNotAdmin = errors.New("only admins can finalize a sale")
)

type FailedValidationResponse struct {
	Message         string            `json:"message"`
	FieldViolations []*FieldViolation `json:"field_violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func fieldViolation(field string, err error) *FieldViolation {
	return &FieldViolation{
		Field:       field,
		Description: err.Error(),
	}
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func failedValidationError(violations []*FieldViolation) *FailedValidationResponse {
	return &FailedValidationResponse{
		Message:         "Invalid request parameters",
		FieldViolations: violations,
	}
}
