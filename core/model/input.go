package model

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day encoded as YYYY-MM-DD in JSON.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// PlanInput is the boundary shape for inline plan definitions: the zone and
// wagon collections plus the scalar takt parameters.
type PlanInput struct {
	ProjectID  string  `json:"project_id,omitempty"`
	Name       string  `json:"name,omitempty"`
	Zones      []Zone  `json:"zones"`
	Wagons     []Wagon `json:"wagons"`
	TaktTime   int     `json:"takt_time"`
	BufferSize int     `json:"buffer_size"`
	StartDate  Date    `json:"start_date"`
}

// Validate checks the required collections and scalars.
func (in PlanInput) Validate() error {
	if len(in.Zones) == 0 {
		return NewValidationError("empty_zones", "at least one zone is required")
	}
	if len(in.Wagons) == 0 {
		return NewValidationError("empty_wagons", "at least one wagon is required")
	}
	if in.TaktTime < 1 {
		return NewValidationError("invalid_takt_time", "takt time must be >= 1")
	}
	if in.BufferSize < 0 {
		return NewValidationError("invalid_buffer_size", "buffer size must be >= 0")
	}
	if in.StartDate.IsZero() {
		return NewValidationError("missing_start_date", "start date is required")
	}
	return nil
}
