package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/worldcup-system/middleware"
	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/services"
)

type WorldHandler struct {
	worldService services.WorldService
}

func NewWorldHandler(ws services.WorldService) *WorldHandler {
	return &WorldHandler{worldService: ws}
}

func (h *WorldHandler) Create(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == "" {
		badRequestResponse(w, r, errors.New("world name is required"))
		return
	}

	world, err := h.worldService.Create(r.Context(), currentUserID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"world": world}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WorldHandler) List(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	worlds, err := h.worldService.ListByOwner(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"worlds": worlds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WorldHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	worldID, err := getIDFromURL(r, "worldID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	world, err := h.worldService.GetByID(r.Context(), worldID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"world": world}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReplaceRankings полностью перезаписывает переопределения рейтингов мира.
func (h *WorldHandler) ReplaceRankings(w http.ResponseWriter, r *http.Request) {
	worldID, err := getIDFromURL(r, "worldID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input struct {
		Rankings []models.CountryRanking `json:"rankings"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	world, err := h.worldService.ReplaceRankings(r.Context(), worldID, currentUserID, input.Rankings)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"world": world}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
