package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/leadhub/server/internal/auth"
	"github.com/leadhub/server/internal/leads"
	"github.com/leadhub/server/internal/middleware"
	"github.com/leadhub/server/internal/model"
)

// SessionIssuer logs the admin in and out
type SessionIssuer interface {
	CheckConfigured() error
	Login(email, password string) (string, time.Duration, error)
	Revoke(ctx context.Context, token string) error
}

// LeadManager is the admin view of the lead lifecycle
type LeadManager interface {
	ListAll(ctx context.Context) ([]model.Lead, error)
	StatusOverview(ctx context.Context) (leads.Overview, error)
	UpdateStatus(ctx context.Context, leadID, status, note string) (model.Lead, error)
}

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	sessions SessionIssuer
	leads    LeadManager
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sessions SessionIssuer, manager LeadManager) *AdminHandler {
	return &AdminHandler{sessions: sessions, leads: manager}
}

// loginRequest is the request body for POST /api/admin/login
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateStatusRequest is the request body for PATCH /api/admin/clients/{id}/status
type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// HandleLogin handles POST /api/admin/login
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	// Configuration problems take precedence over anything the client sent
	if err := h.sessions.CheckConfigured(); err != nil {
		respondLoginError(w, r, err)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, ttl, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		respondLoginError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		Success:          true,
		Message:          "Admin logged in successfully",
		Token:            token,
		ExpiresIn:        ttl.String(),
		ExpiresInSeconds: int64(ttl / time.Second),
	})
}

func respondLoginError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrConfiguration):
		log.Printf("Admin login: ADMIN_EMAIL, ADMIN_PASSWORD or JWT_SECRET is not configured")
		respondWithError(w, http.StatusInternalServerError, "Server configuration error")
	case errors.Is(err, auth.ErrValidation):
		respondWithError(w, http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid admin credentials")
	default:
		respondInternal(w, r, "Failed to login admin", err)
	}
}

// HandleLogout handles POST /api/admin/logout
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.GetToken(r.Context())
	if err := h.sessions.Revoke(r.Context(), token); err != nil {
		respondInternal(w, r, "Failed to logout admin", err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Admin logged out successfully"})
}

// HandleAllClients handles GET /api/admin/all-clients
func (h *AdminHandler) HandleAllClients(w http.ResponseWriter, r *http.Request) {
	all, err := h.leads.ListAll(r.Context())
	if err != nil {
		respondInternal(w, r, "Failed to fetch clients data", err)
		return
	}
	count := len(all)
	respondJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: all})
}

// HandleStatusOverview handles GET /api/admin/status
func (h *AdminHandler) HandleStatusOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.leads.StatusOverview(r.Context())
	if err != nil {
		respondInternal(w, r, "Failed to fetch status overview", err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: overview})
}

// HandleUpdateStatus handles PATCH /api/admin/clients/{id}/status
func (h *AdminHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, err := h.leads.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.Note)
	if err != nil {
		switch {
		case leads.IsValidation(err):
			message := "Invalid status value"
			if req.Status == "" {
				message = "Status value is required"
			}
			respondWithError(w, http.StatusBadRequest, message)
		case errors.Is(err, leads.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Client not found")
		default:
			respondInternal(w, r, "Failed to update client status", err)
		}
		return
	}

	middleware.RecordStatusUpdate(string(lead.Status))
	respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Client status updated successfully",
		Data:    lead,
	})
}
