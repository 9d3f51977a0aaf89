package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/worldcup-system/services"
)

type DrawHandler struct {
	drawService services.DrawService
}

func NewDrawHandler(ds services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: ds}
}

func (h *DrawHandler) GeneratePots(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pots, err := h.drawService.GeneratePots(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pots": pots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DrawHandler) GetPots(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pots, err := h.drawService.GetPots(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pots": pots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DrawHandler) InitializeGroups(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.drawService.InitializeGroups(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DrawHandler) DrawAll(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.drawService.DrawAll(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DrawHandler) DrawPot(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	potNumber, err := getIDFromURL(r, "potNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.drawService.DrawPot(r.Context(), tournamentID, potNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DrawTeam вручную сажает команду в конкретную группу.
func (h *DrawHandler) DrawTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID      int    `json:"team_id"`
		GroupLetter string `json:"group_letter"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamID <= 0 || input.GroupLetter == "" {
		badRequestResponse(w, r, errors.New("team_id and group_letter are required"))
		return
	}

	groups, err := h.drawService.DrawTeam(r.Context(), tournamentID, input.TeamID, input.GroupLetter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DrawHandler) ClearDraw(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.drawService.ClearDraw(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBoard отдаёт корзины, группы и команды одним ответом.
func (h *DrawHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	board, err := h.drawService.GetBoard(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
