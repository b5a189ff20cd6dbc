package domain

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

// Default scheduling policy values
const (
	DefaultBusinessOpen  types.TimeString = "08:00"
	DefaultBusinessClose types.TimeString = "20:00"

	DefaultMinDuration = 30 * time.Minute
	DefaultMaxDuration = 4 * time.Hour

	DefaultPickerDayStart    types.TimeString = "08:00"
	DefaultPickerDayEnd      types.TimeString = "19:45"
	DefaultPickerStepMinutes                  = 15
)

// DefaultDurationOptions длительности, предлагаемые формой создания записи (в минутах)
var DefaultDurationOptions = []int{15, 30, 45, 60, 90, 120}

// Business validation constants
const (
	MaxNotesLength = 500
	MaxListRange   = 92 * 24 * time.Hour
)

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// ActiveStatuses статусы записей, которые попадают в списки по умолчанию
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
