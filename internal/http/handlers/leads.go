package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/leadhub/server/internal/leads"
	"github.com/leadhub/server/internal/middleware"
	"github.com/leadhub/server/internal/model"
)

// LeadSubmitter stores leads coming from the public contact form
type LeadSubmitter interface {
	Submit(ctx context.Context, in leads.SubmitInput) (model.Lead, error)
}

// LeadHandler handles the public lead endpoint
type LeadHandler struct {
	leads LeadSubmitter
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(submitter LeadSubmitter) *LeadHandler {
	return &LeadHandler{leads: submitter}
}

// submitLeadRequest is the request body for POST /api/leads
type submitLeadRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	BudgetRange string `json:"budgetRange"`
	Message     string `json:"message"`
}

// missingFieldsData names the empty form fields in a 400 response
type missingFieldsData struct {
	MissingFields []string `json:"missingFields"`
}

// HandleSubmit handles POST /api/leads
func (h *LeadHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitLeadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, err := h.leads.Submit(r.Context(), leads.SubmitInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ProjectType: req.ProjectType,
		BudgetRange: req.BudgetRange,
		Message:     req.Message,
	})
	if err != nil {
		var verr *leads.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusBadRequest, envelope{
				Success: false,
				Message: "All fields are required",
				Data:    missingFieldsData{MissingFields: verr.Fields},
			})
			return
		}
		respondInternal(w, r, "Error submitting lead", err)
		return
	}

	middleware.RecordLeadSubmitted()
	respondJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Lead submitted successfully",
		Data:    lead,
	})
}
