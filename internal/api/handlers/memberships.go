package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	"github.com/kenyagreatparty/kgp-backend/internal/services"
)

func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var input dto.SubmitApplicationInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.factory.Services.Membership.Submit(r.Context(), input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created, http.Header{})
}

func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	filters := h.getApplicationFiltersQuery(r)
	page, limit := h.getPaginationParams(r)

	applications, err := h.factory.Services.Membership.List(r.Context(), filters, page, limit)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, applications, http.Header{})
}

func (h *Handlers) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errorResponse(w, r, &services.APIError{
			Status:  http.StatusBadRequest,
			Code:    services.CodeValidation,
			Message: "Invalid application id",
		})
		return
	}

	application, err := h.factory.Services.Membership.Get(r.Context(), id)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, application, http.Header{})
}

func (h *Handlers) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errorResponse(w, r, &services.APIError{
			Status:  http.StatusBadRequest,
			Code:    services.CodeValidation,
			Message: "Invalid application id",
		})
		return
	}

	var input dto.ReviewApplicationInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	reviewed, err := h.factory.Services.Membership.Review(r.Context(), id, input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, reviewed, http.Header{})
}

func (h *Handlers) CheckStatusByEmail(w http.ResponseWriter, r *http.Request) {
	emailAddr := chi.URLParam(r, "email")

	summary, err := h.factory.Services.Membership.CheckStatusByEmail(r.Context(), emailAddr)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, summary, http.Header{})
}

func (h *Handlers) CheckStatus(w http.ResponseWriter, r *http.Request) {
	var input dto.CheckStatusInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	summary, err := h.factory.Services.Membership.CheckStatus(r.Context(), input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, summary, http.Header{})
}

func (h *Handlers) RenewMembership(w http.ResponseWriter, r *http.Request) {
	var input dto.RenewMembershipInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	result, err := h.factory.Services.Membership.Renew(r.Context(), input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result, http.Header{})
}

func (h *Handlers) ResignMembership(w http.ResponseWriter, r *http.Request) {
	var input dto.ResignInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	result, err := h.factory.Services.Membership.Resign(r.Context(), input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result, http.Header{})
}

func (h *Handlers) StatsOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.factory.Services.Membership.Stats(r.Context())
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats, http.Header{})
}
