package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/prepstats/internal/store"
	"github.com/fortuna/prepstats/internal/submission"
)

// SubmissionService runs the game submission pipeline
type SubmissionService interface {
	Preview(ctx context.Context, req submission.Request) (*submission.Preview, error)
	Submit(ctx context.Context, req submission.Request) (*store.GameSubmission, *submission.Preview, error)
	List(ctx context.Context, status submission.Status, limit int) ([]*store.GameSubmission, error)
	Review(ctx context.Context, id int64, review submission.ReviewRequest) (*store.GameSubmission, error)
}

// SubmissionHandler proxies API calls to the submission service.
type SubmissionHandler struct {
	service SubmissionService
}

// NewSubmissionHandler wires the REST layer to the submission service.
func NewSubmissionHandler(service SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// HandlePreview handles POST /api/v1/submissions/preview
func (h *SubmissionHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req submission.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	preview, err := h.service.Preview(r.Context(), req)
	if err != nil {
		respondSubmissionError(w, "Failed to preview submission", err)
		return
	}

	respondJSON(w, http.StatusOK, preview)
}

// HandleCreate handles POST /api/v1/submissions
func (h *SubmissionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req submission.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sub, preview, err := h.service.Submit(r.Context(), req)
	if err != nil {
		respondSubmissionError(w, "Failed to store submission", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"submission": submission.Payload(sub),
		"validation": preview.Validation,
		"warnings":   preview.Parsed.Warnings,
	})
}

// HandleList handles GET /api/v1/submissions
func (h *SubmissionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := submission.Status(r.URL.Query().Get("status"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	subs, err := h.service.List(r.Context(), status, limit)
	if err != nil {
		respondSubmissionError(w, "Failed to list submissions", err)
		return
	}

	out := make([]map[string]interface{}, 0, len(subs))
	for _, sub := range subs {
		out = append(out, submission.Payload(sub))
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleReview handles POST /api/v1/submissions/{id}/review
func (h *SubmissionHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid submission ID", err)
		return
	}

	var req submission.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sub, err := h.service.Review(r.Context(), id, req)
	if err != nil {
		respondSubmissionError(w, "Failed to review submission", err)
		return
	}

	respondJSON(w, http.StatusOK, submission.Payload(sub))
}

// respondSubmissionError maps pipeline errors to status codes
func respondSubmissionError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, submission.ErrNotFound):
		respondError(w, http.StatusNotFound, message, err)
	case errors.Is(err, submission.ErrEmptyContent),
		errors.Is(err, submission.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, submission.ErrUnparseable):
		respondError(w, http.StatusUnprocessableEntity, message, err)
	default:
		respondError(w, http.StatusInternalServerError, message, err)
	}
}
