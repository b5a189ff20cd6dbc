package models

import (
	"fmt"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

// Уровни иерархии политики
const (
	LevelResource = "resource"
	LevelSalon    = "salon"
	LevelDefault  = "default"
)

// Request модели

// UpsertPolicyRequest запрос на создание или обновление политики
// Все поля, кроме ключа (SalonID, ResourceID), опциональны
type UpsertPolicyRequest struct {
	UserID             string  `json:"-"`
	SalonID            string  `json:"-"`
	ResourceID         *string `json:"resourceId,omitempty"` // NULL = политика салона
	BusinessOpen       *string `json:"businessOpen,omitempty"`
	BusinessClose      *string `json:"businessClose,omitempty"`
	MinDurationMinutes *int    `json:"minDurationMinutes,omitempty"`
	MaxDurationMinutes *int    `json:"maxDurationMinutes,omitempty"`
	PickerDayStart     *string `json:"pickerDayStart,omitempty"`
	PickerDayEnd       *string `json:"pickerDayEnd,omitempty"`
	PickerStepMinutes  *int    `json:"pickerStepMinutes,omitempty"`
	DurationOptions    []int   `json:"durationOptions,omitempty"`
	IgnoreCancelled    *bool   `json:"ignoreCancelled,omitempty"`
}

// ApplyTo применяет заданные поля к политике
func (r *UpsertPolicyRequest) ApplyTo(p *domain.SchedulingPolicy) error {
	var err error
	if r.BusinessOpen != nil {
		if p.BusinessHours.Open, err = parseTime("businessOpen", *r.BusinessOpen); err != nil {
			return err
		}
	}
	if r.BusinessClose != nil {
		if p.BusinessHours.Close, err = parseTime("businessClose", *r.BusinessClose); err != nil {
			return err
		}
	}
	if r.MinDurationMinutes != nil {
		p.DurationBounds.Min = time.Duration(*r.MinDurationMinutes) * time.Minute
	}
	if r.MaxDurationMinutes != nil {
		p.DurationBounds.Max = time.Duration(*r.MaxDurationMinutes) * time.Minute
	}
	if r.PickerDayStart != nil {
		if p.Picker.DayStart, err = parseTime("pickerDayStart", *r.PickerDayStart); err != nil {
			return err
		}
	}
	if r.PickerDayEnd != nil {
		if p.Picker.DayEnd, err = parseTime("pickerDayEnd", *r.PickerDayEnd); err != nil {
			return err
		}
	}
	if r.PickerStepMinutes != nil {
		p.Picker.StepMinutes = *r.PickerStepMinutes
	}
	if r.DurationOptions != nil {
		p.DurationOptions = append([]int(nil), r.DurationOptions...)
	}
	if r.IgnoreCancelled != nil {
		p.IgnoreCancelled = *r.IgnoreCancelled
	}
	return nil
}

func parseTime(field, value string) (types.TimeString, error) {
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		return "", fmt.Errorf("%s: %v", field, err)
	}
	return ts, nil
}

// Response модели

type BusinessHoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type DurationBoundsResponse struct {
	MinMinutes int `json:"minMinutes"`
	MaxMinutes int `json:"maxMinutes"`
}

type PickerResponse struct {
	DayStart    string `json:"dayStart"`
	DayEnd      string `json:"dayEnd"`
	StepMinutes int    `json:"stepMinutes"`
}

// PolicyResponse ответ с политикой расписания
type PolicyResponse struct {
	ID              int64                  `json:"id,omitempty"`
	SalonID         string                 `json:"salonId"`
	ResourceID      *string                `json:"resourceId,omitempty"`
	Level           string                 `json:"level,omitempty"`
	BusinessHours   BusinessHoursResponse  `json:"businessHours"`
	DurationBounds  DurationBoundsResponse `json:"durationBounds"`
	Picker          PickerResponse         `json:"picker"`
	DurationOptions []int                  `json:"durationOptions"`
	IgnoreCancelled bool                   `json:"ignoreCancelled"`
	CreatedAt       *time.Time             `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time             `json:"updatedAt,omitempty"`
}

// PolicyListResponse ответ со списком политик
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.SchedulingPolicy, level string) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		ID:         p.ID,
		SalonID:    p.SalonID,
		ResourceID: p.ResourceID,
		Level:      level,
		BusinessHours: BusinessHoursResponse{
			Open:  p.BusinessHours.Open.String(),
			Close: p.BusinessHours.Close.String(),
		},
		DurationBounds: DurationBoundsResponse{
			MinMinutes: int(p.DurationBounds.Min / time.Minute),
			MaxMinutes: int(p.DurationBounds.Max / time.Minute),
		},
		Picker: PickerResponse{
			DayStart:    p.Picker.DayStart.String(),
			DayEnd:      p.Picker.DayEnd.String(),
			StepMinutes: p.Picker.StepMinutes,
		},
		DurationOptions: p.DurationOptions,
		IgnoreCancelled: p.IgnoreCancelled,
	}

	if !p.IsDefault() {
		createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDomainPolicyList конвертирует список domain моделей в DTO
func FromDomainPolicyList(policies []*domain.SchedulingPolicy) *PolicyListResponse {
	result := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		level := LevelSalon
		if p.IsResourceSpecific() {
			level = LevelResource
		}
		result = append(result, *FromDomainPolicy(p, level))
	}
	return &PolicyListResponse{Policies: result}
}
