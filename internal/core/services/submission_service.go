package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/referendum-bg/anketa/internal/core/domain"
	"github.com/referendum-bg/anketa/internal/core/ports"
	"github.com/referendum-bg/anketa/internal/logging"
)

// User-facing rejection messages. Every rejection reason gets its own
// message so the UI can tell the voter what actually went wrong.
const (
	msgRateLimited     = "Too many attempts. Please try again in an hour."
	msgMissingFields   = "Missing required fields."
	msgInvalidChoice   = "Invalid vote."
	msgCaptchaFailed   = "Captcha verification failed. Please try again."
	msgDuplicateEmail  = "This email address has already voted!"
	msgDuplicateDevice = "A vote has already been cast from this device!"
	msgDuplicateIP     = "A vote has already been cast from this network address!"
	msgStorageError    = "Failed to record your vote. Please try again later."
)

type submissionService struct {
	repo              ports.VoteRepository
	limiter           ports.RateLimiter
	captcha           ports.CaptchaVerifier
	notifier          ports.TallyNotifier
	checkIPDuplicates bool
}

// NewSubmissionService wires the full accept/reject pipeline. A nil
// captcha verifier disables token verification entirely (local
// development only); in production a verifier must be configured so an
// absent or forged token is a hard rejection.
func NewSubmissionService(
	repo ports.VoteRepository,
	limiter ports.RateLimiter,
	captcha ports.CaptchaVerifier,
	notifier ports.TallyNotifier,
	checkIPDuplicates bool,
) ports.SubmissionService {
	return &submissionService{
		repo:              repo,
		limiter:           limiter,
		captcha:           captcha,
		notifier:          notifier,
		checkIPDuplicates: checkIPDuplicates,
	}
}

// Submit runs one candidate vote through rate limiting, validation,
// captcha verification and duplicate checks, and persists it if every
// step passes. Every outcome is terminal for this attempt; exactly one
// insert happens on acceptance and none on any rejection.
func (s *submissionService) Submit(ctx context.Context, input ports.SubmitVoteInput) domain.SubmissionResult {
	// The slot is consumed here regardless of whether the payload later
	// turns out invalid, matching the deterrent intent: retry bursts are
	// rejected before any storage access.
	if allowed, _ := s.limiter.Allow(input.ClientIP); !allowed {
		return domain.Rejected(domain.RejectionRateLimited, msgRateLimited)
	}

	if input.Name == "" || input.City == "" || input.Email == "" ||
		input.Choice == "" || input.DeviceFingerprint == "" {
		return domain.Rejected(domain.RejectionInvalid, msgMissingFields)
	}

	choice := domain.Choice(input.Choice)
	if !choice.Valid() {
		return domain.Rejected(domain.RejectionInvalid, msgInvalidChoice)
	}

	normalized, err := validateInput(input.Name, input.City, input.Email)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return domain.Rejected(domain.RejectionInvalid, vErr.Reason)
		}
		return domain.Rejected(domain.RejectionInvalid, msgMissingFields)
	}

	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, input.CaptchaToken, input.ClientIP); err != nil {
			logging.Log.Warnf("captcha verification rejected submission from %s: %v", input.ClientIP, err)
			return domain.Rejected(domain.RejectionCaptchaFailed, msgCaptchaFailed)
		}
	}

	if result, rejected := s.checkDuplicates(ctx, normalized.Email, input.DeviceFingerprint, input.ClientIP); rejected {
		return result
	}

	vote := &domain.Vote{
		ID:                uuid.New(),
		Name:              sanitizeHTML(normalized.Name),
		City:              sanitizeHTML(normalized.City),
		Email:             normalized.Email,
		Choice:            choice,
		DeviceFingerprint: input.DeviceFingerprint,
		IPAddress:         input.ClientIP,
		UserAgent:         input.UserAgent,
		CreatedAt:         time.Now(),
	}

	if err := s.repo.SaveVote(ctx, vote); err != nil {
		// The schema constraints are the source of truth for uniqueness;
		// a race lost between the fast-path check and the insert surfaces
		// here and is presented as the same duplicate rejection.
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return domain.Rejected(domain.RejectionDuplicateEmail, msgDuplicateEmail)
		case errors.Is(err, domain.ErrDuplicateDevice):
			return domain.Rejected(domain.RejectionDuplicateDevice, msgDuplicateDevice)
		}
		logging.Log.Errorf("failed to persist vote: %v", err)
		return domain.Rejected(domain.RejectionStorageError, msgStorageError)
	}

	s.notifier.Publish()

	return domain.Accepted(vote)
}

// checkDuplicates short-circuits on the first match. Email is checked
// first because it is the most user-meaningful rejection to surface.
func (s *submissionService) checkDuplicates(ctx context.Context, email, fingerprint, ip string) (domain.SubmissionResult, bool) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		logging.Log.Errorf("duplicate email check failed: %v", err)
		return domain.Rejected(domain.RejectionStorageError, msgStorageError), true
	}
	if exists {
		return domain.Rejected(domain.RejectionDuplicateEmail, msgDuplicateEmail), true
	}

	exists, err = s.repo.ExistsByFingerprint(ctx, fingerprint)
	if err != nil {
		logging.Log.Errorf("duplicate fingerprint check failed: %v", err)
		return domain.Rejected(domain.RejectionStorageError, msgStorageError), true
	}
	if exists {
		return domain.Rejected(domain.RejectionDuplicateDevice, msgDuplicateDevice), true
	}

	if s.checkIPDuplicates && ip != "" && ip != "unknown" {
		exists, err = s.repo.ExistsByIP(ctx, ip)
		if err != nil {
			logging.Log.Errorf("duplicate ip check failed: %v", err)
			return domain.Rejected(domain.RejectionStorageError, msgStorageError), true
		}
		if exists {
			return domain.Rejected(domain.RejectionDuplicateIP, msgDuplicateIP), true
		}
	}

	return domain.SubmissionResult{}, false
}
