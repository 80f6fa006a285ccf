package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/playerroster/internal/api/apierr"
	"github.com/mcoot/playerroster/internal/api/request"
	"github.com/mcoot/playerroster/internal/api/response"
	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
	"github.com/mcoot/playerroster/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	lq, pred, ok := parseListQuery(w, r)
	if !ok {
		return
	}

	page, err := h.playerService.ListPageMatching(r.Context(), pred, lq.Page)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerPageFromModel(page))
}

// All handles GET /api/v1/players/all
func (h *PlayerHandler) All(w http.ResponseWriter, r *http.Request) {
	_, pred, ok := parseListQuery(w, r)
	if !ok {
		return
	}

	players, err := h.playerService.ListMatching(r.Context(), pred)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerList{Players: response.PlayersFromModel(players)})
}

// Count handles GET /api/v1/players/count
func (h *PlayerHandler) Count(w http.ResponseWriter, r *http.Request) {
	_, pred, ok := parseListQuery(w, r)
	if !ok {
		return
	}

	n, err := h.playerService.CountMatching(r.Context(), pred)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Count{Count: n})
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	p, err := h.playerService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodePlayerRequest(w, r)
	if !ok {
		return
	}

	p, err := h.playerService.Create(r.Context(), input)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// Update handles PATCH /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	input, ok := decodePlayerRequest(w, r)
	if !ok {
		return
	}

	p, err := h.playerService.Update(r.Context(), id, input)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	if err := h.playerService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func playerID(w http.ResponseWriter, r *http.Request) (model.PlayerID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, apierr.NewInvalidIDError(raw))
		return 0, false
	}
	return model.PlayerID(id), true
}

func parseListQuery(w http.ResponseWriter, r *http.Request) (request.ListQuery, filter.Predicate, bool) {
	lq, err := request.ParseListQuery(r.URL.Query())
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return request.ListQuery{}, filter.Predicate{}, false
	}
	pred, err := lq.Predicate()
	if err != nil {
		WriteError(w, err)
		return request.ListQuery{}, filter.Predicate{}, false
	}
	return lq, pred, true
}

func decodePlayerRequest(w http.ResponseWriter, r *http.Request) (model.PlayerInput, bool) {
	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return model.PlayerInput{}, false
	}
	input, err := req.ToInput()
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return model.PlayerInput{}, false
	}
	return input, true
}
