package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/referendum-bg/anketa/internal/core/domain"
	"github.com/referendum-bg/anketa/internal/core/ports"
)

const uniqueViolation = "23505"

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, name, city, email, vote, device_fingerprint, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.ExecContext(ctx, query,
		vote.ID, vote.Name, vote.City, vote.Email, vote.Choice,
		vote.DeviceFingerprint, vote.IPAddress, vote.UserAgent, vote.CreatedAt,
	)
	if err != nil {
		if dupErr := translateUniqueViolation(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM votes WHERE email = $1 LIMIT 1`, email)
}

func (r *voteRepository) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM votes WHERE device_fingerprint = $1 LIMIT 1`, fingerprint)
}

func (r *voteRepository) ExistsByIP(ctx context.Context, ip string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM votes WHERE ip_address = $1 LIMIT 1`, ip)
}

func (r *voteRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) GetTally(ctx context.Context) (domain.Tally, error) {
	query := `SELECT vote, COUNT(*) FROM votes GROUP BY vote`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("failed to fetch tally: %w", err)
	}
	defer rows.Close()

	var tally domain.Tally
	for rows.Next() {
		var choice domain.Choice
		var count int64
		if err := rows.Scan(&choice, &count); err != nil {
			return domain.Tally{}, fmt.Errorf("failed to scan tally row: %w", err)
		}
		switch choice {
		case domain.ChoiceFor:
			tally.For = count
		case domain.ChoiceAgainst:
			tally.Against = count
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Tally{}, fmt.Errorf("error iterating tally rows: %w", err)
	}

	tally.Total = tally.For + tally.Against
	return tally, nil
}

// translateUniqueViolation maps a schema-level uniqueness failure to the
// duplicate sentinel the fast-path check would have produced, so a lost
// check-then-insert race still surfaces to the user as a duplicate.
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case "votes_email_key":
		return domain.ErrDuplicateEmail
	case "votes_device_fingerprint_key":
		return domain.ErrDuplicateDevice
	}
	return domain.ErrDuplicateEmail
}
