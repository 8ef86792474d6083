package ports

import (
	"context"

	"github.com/referendum-bg/anketa/internal/core/domain"
)

type VoteRepository interface {
	SaveVote(ctx context.Context, vote *domain.Vote) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error)
	ExistsByIP(ctx context.Context, ip string) (bool, error)
	GetTally(ctx context.Context) (domain.Tally, error)
}

type SubmitVoteInput struct {
	Name              string
	City              string
	Email             string
	Choice            string
	DeviceFingerprint string
	CaptchaToken      string
	ClientIP          string
	UserAgent         string
}

type SubmissionService interface {
	Submit(ctx context.Context, input SubmitVoteInput) domain.SubmissionResult
}
