package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/worldcup-system/middleware"
	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/services"
)

type MembershipHandler struct {
	membershipService services.MembershipService
	jwtSecret         []byte
}

func NewMembershipHandler(ms services.MembershipService, jwtSecret string) *MembershipHandler {
	return &MembershipHandler{
		membershipService: ms,
		jwtSecret:         []byte(jwtSecret),
	}
}

// Upgrade меняет уровень подписки текущего пользователя и сразу выдаёт
// новый токен, чтобы tier в claims не отставал от базы.
func (h *MembershipHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input struct {
		Tier models.MembershipTier `json:"tier"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.membershipService.Upgrade(r.Context(), currentUserID, input.Tier)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tokenString, err := issueToken(h.jwtSecret, user)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	response := jsonResponse{
		"user":  user,
		"token": tokenString,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
