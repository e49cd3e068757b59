package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cardsapi/app/apperrors"
	"cardsapi/app/dto"
	"cardsapi/app/middleware"
	"cardsapi/app/models"
	"cardsapi/app/query"
	"cardsapi/app/services"
)

type CardController struct {
	Cards *services.CardService
}

func NewCardController(cards *services.CardService) *CardController {
	return &CardController{Cards: cards}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates the error taxonomy to a status code and JSON body.
// Errors outside the taxonomy get a generic body; their text is internal.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "An internal error occurred."
	}
	writeJSON(w, status, dto.ErrorResponse{Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: msg})
}

func cardID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (c *CardController) Post(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Malformed request body.")
		return
	}
	card, err := c.Cards.CreateCard(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (c *CardController) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := cardID(r)
	if !ok {
		badRequest(w, "Card id must be a positive integer.")
		return
	}
	card, err := c.Cards.GetCard(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// AggregateGet handles the filtered, sorted, paginated multi-card query.
func (c *CardController) AggregateGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	q := r.URL.Query()

	page := query.DefaultPageIdx
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(w, "page must be a non-negative integer.")
			return
		}
		page = n
	}
	pageSize := query.DefaultPageSize
	if raw := q.Get("items_in_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(w, "items_in_page must be a positive integer.")
			return
		}
		pageSize = n
	}
	sortField := q.Get("sort_by_field")
	order := query.SortAsc
	if raw := q.Get("sort_order"); raw != "" {
		parsed, err := query.ParseSortOrder(raw)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		order = parsed
	}

	filters := map[string]string{}
	for _, key := range []string{
		models.FilterName, models.FilterColor, models.FilterStatus,
		models.FilterBeginDate, models.FilterEndDate, models.FilterCreatedBy,
	} {
		if q.Has(key) {
			filters[key] = q.Get(key)
		}
	}

	params, err := query.NewParams(page, pageSize, sortField, order, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	cards, err := c.Cards.GetCardsByFilter(r.Context(), actor, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (c *CardController) Put(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := cardID(r)
	if !ok {
		badRequest(w, "Card id must be a positive integer.")
		return
	}
	var req dto.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Malformed request body.")
		return
	}
	card, err := c.Cards.ReplaceCard(r.Context(), actor, id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (c *CardController) Patch(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := cardID(r)
	if !ok {
		badRequest(w, "Card id must be a positive integer.")
		return
	}
	var patch dto.CardPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "Malformed request body.")
		return
	}
	card, err := c.Cards.UpdateCard(r.Context(), actor, id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (c *CardController) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := cardID(r)
	if !ok {
		badRequest(w, "Card id must be a positive integer.")
		return
	}
	if err := c.Cards.DeleteCard(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
