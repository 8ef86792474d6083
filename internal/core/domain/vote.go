package domain

import (
	"time"

	"github.com/google/uuid"
)

// Choice is the referendum answer. The poll is a single yes/no question,
// so these are the only two values the system ever stores.
type Choice string

const (
	ChoiceFor     Choice = "for"
	ChoiceAgainst Choice = "against"
)

func (c Choice) Valid() bool {
	return c == ChoiceFor || c == ChoiceAgainst
}

type Vote struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	City              string    `json:"city"`
	Email             string    `json:"email"`
	Choice            Choice    `json:"vote"`
	DeviceFingerprint string    `json:"-"`
	IPAddress         string    `json:"-"`
	UserAgent         string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// Tally is always derived from the votes table, never stored.
type Tally struct {
	For     int64 `json:"for"`
	Against int64 `json:"against"`
	Total   int64 `json:"total"`
}
