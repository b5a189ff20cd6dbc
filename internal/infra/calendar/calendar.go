package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

const productID = "-//Gurfa//Appointment Hub//IT"

// Feed описание выгружаемого календаря
type Feed struct {
	Name        string
	Domain      string // используется в UID событий: {id}@{domain}
	GeneratedAt time.Time
}

// Encode пишет записи в формате iCalendar (RFC 5545)
// Отмененные записи выгружаются со статусом CANCELLED, чтобы клиенты удалили их у себя
func Encode(w io.Writer, feed Feed, appointments []*domain.Appointment) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if feed.Name != "" {
		cal.SetXWRCalName(feed.Name)
	}

	for _, a := range appointments {
		if a == nil {
			continue
		}
		addEvent(cal, feed, a)
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("calendar: write: %w", err)
	}
	return nil
}

func addEvent(cal *ical.Calendar, feed Feed, a *domain.Appointment) {
	event := cal.AddEvent(uid(feed, a.ID))
	event.SetDtStampTime(feed.GeneratedAt)
	event.SetCreatedTime(a.CreatedAt)
	event.SetModifiedAt(a.UpdatedAt)
	event.SetStartAt(a.Start)
	event.SetEndAt(a.End)
	event.SetSummary(summary(a))
	event.SetProperty(ical.ComponentPropertyStatus, status(a.Status))
	if a.Notes != nil && *a.Notes != "" {
		event.SetDescription(*a.Notes)
	}
}

func uid(feed Feed, id string) string {
	if feed.Domain == "" {
		return id
	}
	return id + "@" + feed.Domain
}

func summary(a *domain.Appointment) string {
	if a.ServiceName != nil && strings.TrimSpace(*a.ServiceName) != "" {
		return *a.ServiceName
	}
	return "Appuntamento"
}

func status(s domain.AppointmentStatus) string {
	switch s {
	case domain.StatusPending:
		return "TENTATIVE"
	case domain.StatusCancelled:
		return "CANCELLED"
	default:
		return "CONFIRMED"
	}
}
