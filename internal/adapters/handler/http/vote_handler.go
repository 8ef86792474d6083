package http

import (
	"encoding/json"
	"net/http"

	"github.com/referendum-bg/anketa/internal/core/domain"
	"github.com/referendum-bg/anketa/internal/core/ports"
)

type VoteHandler struct {
	service ports.SubmissionService
}

func NewVoteHandler(service ports.SubmissionService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type submitVoteRequest struct {
	Name              string `json:"name"`
	City              string `json:"city"`
	Email             string `json:"email"`
	Vote              string `json:"vote"`
	DeviceFingerprint string `json:"deviceFingerprint"`
	CaptchaToken      string `json:"captchaToken"`
}

type submitVoteResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Vote    *domain.Vote `json:"vote"`
}

// SubmitVote godoc
// @Summary      Submits a referendum vote
// @Description  Runs the candidate vote through rate limiting, validation, captcha and duplicate checks, then persists it
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      409
// @Failure      429
// @Failure      500
// @Router       /votes [post]
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req submitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.SubmitVoteInput{
		Name:              req.Name,
		City:              req.City,
		Email:             req.Email,
		Choice:            req.Vote,
		DeviceFingerprint: req.DeviceFingerprint,
		CaptchaToken:      req.CaptchaToken,
		ClientIP:          ResolveClientIP(r),
		UserAgent:         r.UserAgent(),
	}

	result := h.service.Submit(r.Context(), input)
	if !result.Accepted() {
		writeError(w, statusForRejection(result.Rejection.Kind), result.Rejection.Message)
		return
	}

	writeJSON(w, http.StatusCreated, submitVoteResponse{
		Success: true,
		Message: "Your vote has been recorded!",
		Vote:    result.Vote,
	})
}

// statusForRejection maps the closed set of rejection kinds onto HTTP
// statuses. Every kind is handled explicitly; an unknown kind would be a
// programming error and is treated as a server failure.
func statusForRejection(kind domain.RejectionKind) int {
	switch kind {
	case domain.RejectionInvalid, domain.RejectionCaptchaFailed:
		return http.StatusBadRequest
	case domain.RejectionDuplicateEmail, domain.RejectionDuplicateDevice, domain.RejectionDuplicateIP:
		return http.StatusConflict
	case domain.RejectionRateLimited:
		return http.StatusTooManyRequests
	case domain.RejectionStorageError:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
