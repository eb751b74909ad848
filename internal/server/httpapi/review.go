package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"progress_service/internal/domain"
)

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review := &domain.Review{
		SubmissionID: payload.SubmissionID,
		ReviewerID:   payload.ReviewerID,
		Feedback:     payload.Feedback,
		Review:       payload.Review,
		Ready:        payload.Ready,
		Score:        payload.Score,
	}

	created, err := h.reviews.CreateReview(r.Context(), review)
	if err != nil {
		h.logger.Error("failed to create review",
			zap.Int64("submission_id", payload.SubmissionID),
			zap.Int64("reviewer_id", payload.ReviewerID),
			zap.Error(err),
		)
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	writeJSON(w, http.StatusCreated, toReviewPayload(created))
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review := &domain.Review{
		ID:           reviewID,
		SubmissionID: payload.SubmissionID,
		ReviewerID:   payload.ReviewerID,
		Feedback:     payload.Feedback,
		Review:       payload.Review,
		Ready:        payload.Ready,
		Score:        payload.Score,
	}

	if err := h.reviews.UpdateReview(r.Context(), review); err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteReviews(w http.ResponseWriter, r *http.Request) {
	var query domain.ReviewQuery
	var err error

	if query.ID, err = parseInt64Query(r, "id"); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if query.SubmissionID, err = parseInt64Query(r, "submission_id"); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if query.ReviewerID, err = parseInt64Query(r, "reviewer_id"); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	// An unfiltered delete would wipe the whole table.
	if query.ID == 0 && query.SubmissionID == 0 && query.ReviewerID == 0 {
		writeErrorJSON(w, http.StatusBadRequest, "at least one filter is required")
		return
	}

	if err := h.reviews.DeleteReviews(r.Context(), query); err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	submissionID, err := parseIDParam(r, "submissionID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	reviews, err := h.reviews.ListReviews(r.Context(), submissionID)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	payloads := make([]reviewPayload, 0, len(reviews))
	for _, review := range reviews {
		payloads = append(payloads, toReviewPayload(review))
	}
	writeJSON(w, http.StatusOK, payloads)
}
