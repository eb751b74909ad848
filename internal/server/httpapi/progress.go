package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"progress_service/internal/domain"
)

func (h *Handler) GetStudentProgress(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "courseID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courses.GetByID(r.Context(), courseID)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	link, err := h.links.BuildStudentLink(r.Context(), user, course, nil)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	writeJSON(w, http.StatusOK, toAssignmentLinkPayload(link))
}

func (h *Handler) GetGroupProgress(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "courseID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	groupID, err := parseIDParam(r, "groupID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courses.GetByID(r.Context(), courseID)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}
	group, err := h.groups.GetByID(r.Context(), groupID)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	link, err := h.links.BuildGroupLink(r.Context(), group, course, nil)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}
	if link == nil {
		writeErrorJSON(w, http.StatusNotFound, "group is not enrolled in this course")
		return
	}

	writeJSON(w, http.StatusOK, toAssignmentLinkPayload(link))
}

func (h *Handler) GetUserProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	statuses, err := statusesFromRequest(r)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	links, err := h.links.BuildAllStudentLinks(r.Context(), user, statuses...)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	payloads := make([]assignmentLinkPayload, 0, len(links))
	for _, link := range links {
		payloads = append(payloads, toAssignmentLinkPayload(link))
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (h *Handler) GetCourseRoster(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "courseID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	excludeGroupMembers := r.URL.Query().Get("exclude_group_members") == "true"
	statuses, err := statusesFromRequest(r)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	cacheKey := rosterCacheKey(courseID, excludeGroupMembers, statuses)
	if h.cache != nil {
		if data, ok := h.cache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
	}

	course, err := h.courses.GetByID(r.Context(), courseID)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	enrollments, err := h.links.BuildCourseRoster(r.Context(), course, excludeGroupMembers, statuses...)
	if err != nil {
		statusCode := mapErr(err)
		writeErrorJSON(w, statusCode, http.StatusText(statusCode))
		return
	}

	payloads := make([]enrollmentPayload, 0, len(enrollments))
	for _, enrollment := range enrollments {
		payloads = append(payloads, toEnrollmentPayload(enrollment))
	}

	data, err := json.Marshal(payloads)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "failed to serialize response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)

	if h.cache != nil {
		h.cache.Set(r.Context(), cacheKey, data, h.rosterTTL)
	}
}

func statusesFromRequest(r *http.Request) ([]domain.EnrollmentStatus, error) {
	values := r.URL.Query()["status"]
	statuses := make([]domain.EnrollmentStatus, 0, len(values))
	for _, val := range values {
		status := domain.EnrollmentStatus(val)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid enrollment status: %q", val)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func rosterCacheKey(courseID int64, excludeGroupMembers bool, statuses []domain.EnrollmentStatus) string {
	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, string(status))
	}
	return fmt.Sprintf("roster:%d:%t:%s", courseID, excludeGroupMembers, strings.Join(parts, ","))
}
