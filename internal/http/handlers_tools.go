package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	"github.com/datalabs-io/platform-api/internal/service"
)

// ToolHandlers provides HTTP handlers for workbench tool provisioning.
type ToolHandlers struct {
	Svc *service.ToolService
}

type createToolRequest struct {
	Type    string `json:"type"`
	Version string `json:"version"`
	CPU     string `json:"cpu"`
	Memory  string `json:"memory"`
}

type toolResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
	Version string `json:"version"`
	CPU     string `json:"cpu,omitempty"`
	Memory  string `json:"memory,omitempty"`
	Status  string `json:"status"`
}

// CreateTool provisions a workbench tool owned by the caller.
// POST /tools.
func (h *ToolHandlers) CreateTool(w http.ResponseWriter, r *http.Request) {
	actor, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req createToolRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tool, err := h.Svc.CreateTool(r.Context(), actor, service.CreateToolInput{
		Type:    domainauth.ToolType(req.Type),
		Version: req.Version,
		CPU:     req.CPU,
		Memory:  req.Memory,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toToolResponse(tool))
}

// GetTool returns one of the caller's tools by id.
// GET /tools/{id}.
func (h *ToolHandlers) GetTool(w http.ResponseWriter, r *http.Request) {
	actor, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	tool, err := h.Svc.Get(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toToolResponse(tool))
}

func toToolResponse(t domainauth.Tool) toolResponse {
	return toolResponse{
		ID:      t.ID,
		UserID:  t.UserID,
		Type:    string(t.Type),
		Version: t.Version,
		CPU:     t.CPU,
		Memory:  t.Memory,
		Status:  t.Status,
	}
}
