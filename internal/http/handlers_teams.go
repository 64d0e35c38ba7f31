package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	"github.com/datalabs-io/platform-api/internal/service"
)

// TeamHandlers provides HTTP handlers for team administration.
type TeamHandlers struct {
	Svc *service.TeamService
}

type createTeamRequest struct {
	Name string `json:"name"`
}

// CreateTeam creates a team.
// POST /teams.
func (h *TeamHandlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req createTeamRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	team, err := h.Svc.CreateTeam(r.Context(), actor, req.Name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"name": team.Name})
}

type addMemberRequest struct {
	Email      string `json:"email"`
	MemberType string `json:"member_type"`
}

// AddMember adds a user to a team.
// POST /teams/members?team_name=<name>.
func (h *TeamHandlers) AddMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	teamName := r.URL.Query().Get("team_name")
	if teamName == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_team_name",
			Err:     errors.New("team_name is required"),
		})
		return
	}

	var req addMemberRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	member, err := h.Svc.AddMember(r.Context(), actor, teamName, req.Email, domainauth.MemberType(req.MemberType))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"team_name":   member.TeamName,
		"user_id":     member.UserID,
		"member_type": string(member.Type),
	})
}
