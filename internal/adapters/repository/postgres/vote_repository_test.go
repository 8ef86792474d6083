package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/referendum-bg/anketa/internal/core/domain"
)

func TestTranslateUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email constraint",
			err:  &pq.Error{Code: "23505", Constraint: "votes_email_key"},
			want: domain.ErrDuplicateEmail,
		},
		{
			name: "fingerprint constraint",
			err:  &pq.Error{Code: "23505", Constraint: "votes_device_fingerprint_key"},
			want: domain.ErrDuplicateDevice,
		},
		{
			name: "wrapped pq error is still recognized",
			err:  fmt.Errorf("exec failed: %w", &pq.Error{Code: "23505", Constraint: "votes_email_key"}),
			want: domain.ErrDuplicateEmail,
		},
		{
			name: "unique violation on an unnamed constraint",
			err:  &pq.Error{Code: "23505"},
			want: domain.ErrDuplicateEmail,
		},
		{
			name: "other pq error code",
			err:  &pq.Error{Code: "22001", Constraint: "votes_email_key"},
			want: nil,
		},
		{
			name: "non-pq error",
			err:  errors.New("connection reset"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateUniqueViolation(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
