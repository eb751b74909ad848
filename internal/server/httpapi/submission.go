package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"progress_service/internal/domain"
)

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var payload submissionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.SubmissionStatusNone
	if payload.Status != "" {
		status = domain.SubmissionStatus(payload.Status)
		if !status.IsValid() {
			writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("invalid submission status: %q", payload.Status))
			return
		}
	}

	submission := &domain.Submission{
		AssignmentID: payload.AssignmentID,
		UserID:       payload.UserID,
		GroupID:      payload.GroupID,
		Score:        payload.Score,
		Status:       status,
		Released:     payload.Released,
		TestResult:   payload.TestResult,
	}

	if err := h.submissions.CreateSubmission(r.Context(), submission); err != nil {
		h.logger.Error("failed to reconcile submission",
			zap.Int64("assignment_id", payload.AssignmentID),
			zap.Int64("user_id", payload.UserID),
			zap.Int64("group_id", payload.GroupID),
			zap.Error(err),
		)
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionPayload(submission))
}

func (h *Handler) GetLatestSubmission(w http.ResponseWriter, r *http.Request) {
	query, err := submissionQueryFromRequest(r)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	submission, err := h.submissions.GetLatestSubmission(r.Context(), query)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionPayload(submission))
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	query, err := submissionQueryFromRequest(r)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	submissions, err := h.submissions.ListSubmissions(r.Context(), query)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	payloads := make([]*submissionPayload, 0, len(submissions))
	for _, submission := range submissions {
		payloads = append(payloads, toSubmissionPayload(submission))
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (h *Handler) GetLastSubmissions(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "courseID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	query, err := submissionQueryFromRequest(r)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	submissions, err := h.submissions.GetLastSubmissions(r.Context(), courseID, query)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	payloads := make([]*submissionPayload, 0, len(submissions))
	for _, submission := range submissions {
		payloads = append(payloads, toSubmissionPayload(submission))
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (h *Handler) ApproveSubmissions(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "courseID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	assignmentID, err := parseIDParam(r, "assignmentID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload approvalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.SubmissionStatus(payload.Status)
	err = h.submissions.ApproveByThreshold(r.Context(), courseID, assignmentID, payload.MinScore, status, payload.Released)
	if err != nil {
		h.logger.Error("failed to approve submissions",
			zap.Int64("course_id", courseID),
			zap.Int64("assignment_id", assignmentID),
			zap.Int("min_score", payload.MinScore),
			zap.Error(err),
		)
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func submissionQueryFromRequest(r *http.Request) (domain.SubmissionQuery, error) {
	var query domain.SubmissionQuery
	var err error

	if query.AssignmentID, err = parseInt64Query(r, "assignment_id"); err != nil {
		return query, err
	}
	if query.UserID, err = parseInt64Query(r, "user_id"); err != nil {
		return query, err
	}
	if query.GroupID, err = parseInt64Query(r, "group_id"); err != nil {
		return query, err
	}

	return query, nil
}
