package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/referendum-bg/anketa/internal/core/domain"
	"github.com/referendum-bg/anketa/internal/core/ports"
)

// TallyNotifier fans a change signal out to subscribers. Signals are
// coalesced: a subscriber that has not drained its channel gets at most
// one pending signal, which is enough because subscribers recompute the
// full tally on every wake-up.
type TallyNotifier struct {
	mu     sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

func NewTallyNotifier() *TallyNotifier {
	return &TallyNotifier{subs: make(map[int]chan struct{})}
}

func (n *TallyNotifier) Publish() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *TallyNotifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}

	return ch, cancel
}

type tallyService struct {
	repo     ports.VoteRepository
	notifier ports.TallyNotifier
}

func NewTallyService(repo ports.VoteRepository, notifier ports.TallyNotifier) ports.TallyService {
	return &tallyService{
		repo:     repo,
		notifier: notifier,
	}
}

// GetTally is a full-scan aggregation with no side effects. Acceptable
// at the expected scale of tens of thousands of rows.
func (s *tallyService) GetTally(ctx context.Context) (domain.Tally, error) {
	tally, err := s.repo.GetTally(ctx)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("failed to compute tally: %w", err)
	}
	return tally, nil
}

func (s *tallyService) Subscribe() (<-chan struct{}, func()) {
	return s.notifier.Subscribe()
}
