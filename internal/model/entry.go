package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingDate   = errors.New("date is required")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrNegativeValue = errors.New("numeric fields cannot be negative")
	ErrBlankCategory = errors.New("category label cannot be blank")
)

// Entry is one day's recorded time and expenses.
type Entry struct {
	ID                   string    `json:"id"`
	Date                 string    `json:"date"`
	ProjectName          string    `json:"projectName,omitempty"`
	DrivingHours         Number    `json:"drivingHours"`
	StandardHours        Number    `json:"standardHours"`
	OvertimeHours        Number    `json:"overtimeHours"`
	NightHours           Number    `json:"nightHours"`
	NightOvertimeHours   Number    `json:"nightOvertimeHours"`
	WeekendHours         Number    `json:"weekendHours"`
	WeekendOvertimeHours Number    `json:"weekendOvertimeHours"`
	Mileage              Number    `json:"mileage"`
	PerDiem              Number    `json:"perDiem"`
	OtherExpense         Number    `json:"otherExpense"`
	ExpenseCategory      string    `json:"expenseCategory,omitempty"`
	ExpenseDescription   string    `json:"expenseDescription,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	ReceiptImage         string    `json:"receiptImage,omitempty"`
	Timestamp            time.Time `json:"timestamp"`
}

// Hours returns the recorded hours for category c.
func (e Entry) Hours(c HourCategory) Number {
	if p := e.hourField(c); p != nil {
		return *p
	}
	return Number{}
}

// SetHours stores n as the hours for category c.
func (e *Entry) SetHours(c HourCategory, n Number) {
	if p := e.hourField(c); p != nil {
		*p = n
	}
}

func (e *Entry) hourField(c HourCategory) *Number {
	switch c {
	case HourDriving:
		return &e.DrivingHours
	case HourStandard:
		return &e.StandardHours
	case HourOvertime:
		return &e.OvertimeHours
	case HourNight:
		return &e.NightHours
	case HourNightOvertime:
		return &e.NightOvertimeHours
	case HourWeekend:
		return &e.WeekendHours
	case HourWeekendOvertime:
		return &e.WeekendOvertimeHours
	}
	return nil
}

// Numbers returns every numeric field, for validation.
func (e Entry) Numbers() []Number {
	out := make([]Number, 0, len(HourCategories)+3)
	for _, c := range HourCategories {
		out = append(out, e.Hours(c))
	}
	return append(out, e.Mileage, e.PerDiem, e.OtherExpense)
}

// Equal compares entries field by field, numerics by value.
func (e Entry) Equal(o Entry) bool {
	if e.ID != o.ID || e.Date != o.Date || e.ProjectName != o.ProjectName ||
		e.ExpenseCategory != o.ExpenseCategory || e.ExpenseDescription != o.ExpenseDescription ||
		e.Notes != o.Notes || e.ReceiptImage != o.ReceiptImage || !e.Timestamp.Equal(o.Timestamp) {
		return false
	}
	a, b := e.Numbers(), o.Numbers()
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts records written by older revisions of the data
// file: numeric ids, and a gasExpense that is folded into OtherExpense
// (category Fuel) when the record has no other expense of its own.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	aux := struct {
		*plain
		ID         json.RawMessage `json:"id"`
		GasExpense Number          `json:"gasExpense"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	e.ID = id
	if aux.GasExpense.Valid && !e.OtherExpense.Valid {
		e.OtherExpense = aux.GasExpense
		if e.ExpenseCategory == "" {
			e.ExpenseCategory = "Fuel"
		}
	}
	return nil
}

// decodeID reads a string id, or the literal digits of a numeric one.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decoding entry id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decoding entry id %s: %w", raw, err)
	}
	return n.String(), nil
}
