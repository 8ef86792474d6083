package ports

import (
	"context"

	"github.com/referendum-bg/anketa/internal/core/domain"
)

type TallyService interface {
	GetTally(ctx context.Context) (domain.Tally, error)
	Subscribe() (<-chan struct{}, func())
}

// TallyNotifier signals subscribers that the vote set changed. Subscribers
// are expected to recompute the tally on each signal.
type TallyNotifier interface {
	Publish()
	Subscribe() (<-chan struct{}, func())
}
