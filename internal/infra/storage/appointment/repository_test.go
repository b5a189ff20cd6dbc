package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

func TestListQuery_ActiveStatusesByDefault(t *testing.T) {
	query, args, err := listQuery(domain.AppointmentsFilter{SalonID: "salon-1"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE salon_id = $1 AND status IN ($2,$3,$4)")
	assert.Contains(t, query, "ORDER BY start_at ASC, resource_id ASC")
	assert.Equal(t, []interface{}{
		"salon-1",
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
	}, args)
}

func TestListQuery_Filters(t *testing.T) {
	from := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	resourceID := "staff1"

	t.Run("include cancelled", func(t *testing.T) {
		query, args, err := listQuery(domain.AppointmentsFilter{
			SalonID:          "salon-1",
			ResourceID:       &resourceID,
			From:             &from,
			To:               &to,
			IncludeCancelled: true,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "salon_id = $1 AND resource_id = $2 AND end_at > $3 AND start_at < $4")
		assert.NotContains(t, query, "status IN")
		assert.NotContains(t, query, "status =")
		assert.Equal(t, []interface{}{"salon-1", "staff1", from, to}, args)
	})

	t.Run("explicit status wins", func(t *testing.T) {
		status := domain.StatusCancelled
		query, args, err := listQuery(domain.AppointmentsFilter{SalonID: "salon-1", Status: &status}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "status = $2")
		assert.Equal(t, []interface{}{"salon-1", domain.StatusCancelled}, args)
	})
}
