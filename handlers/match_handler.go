package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smashscore/smashscore/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// Update godoc
// @Summary Apply one scoring edit to a match
// @Description Accepts a field/value pair: team1Score or team2Score
// @Description with an integer value, or winner with a team id or null.
// @Tags matches
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param matchId path string true "Match ID"
// @Param input body services.MatchEditRequest true "Edit"
// @Success 200 {object} services.MatchEditResult
// @Router /tournaments/{id}/matches/{matchId} [patch]
func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "id")
	matchID := chi.URLParam(r, "matchId")

	var req services.MatchEditRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.Field == "" {
		badRequestResponse(w, r, errors.New("field is required"))
		return
	}

	result, err := h.matchService.ApplyEdit(r.Context(), tournamentID, matchID, req)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
