package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	"github.com/datalabs-io/platform-api/internal/service"
)

// ProfileHandlers serves the authenticated user's own view of the platform.
type ProfileHandlers struct {
	Teams  *service.TeamService
	Logger *slog.Logger
}

type profileMembership struct {
	TeamName   string `json:"team_name"`
	MemberType string `json:"member_type"`
}

type profileResponse struct {
	UserID string              `json:"user_id"`
	Email  string              `json:"email"`
	Role   domainauth.Role     `json:"role"`
	Teams  []profileMembership `json:"teams"`
}

// Profile returns the caller's identity and team memberships.
// GET /profile.
func (h *ProfileHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	resp := profileResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
		Teams:  []profileMembership{},
	}

	if h.Teams != nil {
		memberships, err := h.Teams.MembershipsFor(r.Context(), identity.UserID)
		if err != nil {
			WriteAppError(w, err)
			return
		}
		for _, m := range memberships {
			resp.Teams = append(resp.Teams, profileMembership{
				TeamName:   m.TeamName,
				MemberType: string(m.Type),
			})
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}
