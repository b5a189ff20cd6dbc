package scheduling

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

func TestReject(t *testing.T) {
	conflict := newAppointment("a1", "r1", at(10, 0), at(11, 0))
	cause := fmt.Errorf("%w: overlaps appointment a1", ErrSlotConflict)

	err := fmt.Errorf("create: %w", Reject(cause, domain.DefaultSchedulingPolicy(), conflict))

	assert.ErrorIs(t, err, ErrSlotConflict)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ConflictNotice(), rej.Notice)
	assert.Equal(t, "a1", rej.Conflict.ID)
}

func TestAsRejection_PlainError(t *testing.T) {
	_, ok := AsRejection(errors.New("boom"))
	assert.False(t, ok)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrOutOfBusinessHours))
	assert.True(t, IsValidationError(fmt.Errorf("%w: bad date", ErrInvalidTimeInput)))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(errors.New("db down")))
}
