package model

import (
	"fmt"
	"slices"
	"strings"
)

// HourCategory identifies one of the independent hour types an entry records.
type HourCategory string

const (
	HourDriving         HourCategory = "driving"
	HourStandard        HourCategory = "standard"
	HourOvertime        HourCategory = "overtime"
	HourNight           HourCategory = "night"
	HourNightOvertime   HourCategory = "nightOvertime"
	HourWeekend         HourCategory = "weekend"
	HourWeekendOvertime HourCategory = "weekendOvertime"
)

// HourCategories lists every category in display and invoice order.
var HourCategories = []HourCategory{
	HourDriving,
	HourStandard,
	HourOvertime,
	HourNight,
	HourNightOvertime,
	HourWeekend,
	HourWeekendOvertime,
}

var hourLabels = map[HourCategory]string{
	HourDriving:         "Driving Time",
	HourStandard:        "Standard Labor",
	HourOvertime:        "Overtime Labor",
	HourNight:           "Night Labor",
	HourNightOvertime:   "Night Overtime Labor",
	HourWeekend:         "Weekend Labor",
	HourWeekendOvertime: "Weekend Overtime Labor",
}

var hourColumns = map[HourCategory]string{
	HourDriving:         "Driving Hours",
	HourStandard:        "Standard Hours",
	HourOvertime:        "Overtime Hours",
	HourNight:           "Night Hours",
	HourNightOvertime:   "Night OT Hours",
	HourWeekend:         "Weekend Hours",
	HourWeekendOvertime: "Weekend OT Hours",
}

// Label is the invoice line-item description.
func (c HourCategory) Label() string { return hourLabels[c] }

// Column is the short header used by tabular exports.
func (c HourCategory) Column() string { return hourColumns[c] }

// ParseHourCategory resolves a category name, case-insensitively.
func ParseHourCategory(s string) (HourCategory, error) {
	for _, c := range HourCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown hour category %q", s)
}

// DefaultExpenseCategories seeds the vocabulary when nothing is stored yet.
var DefaultExpenseCategories = []string{
	"Fuel",
	"Materials",
	"Tools",
	"Meals",
	"Lodging",
	"Parking",
	"Supplies",
	"Other",
}

// ExpenseCategorySet is an ordered set of distinct labels. Labels can be
// appended but never removed.
type ExpenseCategorySet []string

// Contains reports whether label is part of the set.
func (s ExpenseCategorySet) Contains(label string) bool {
	return slices.Contains(s, label)
}

// Add appends a trimmed label and reports whether it was new.
func (s *ExpenseCategorySet) Add(label string) (bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return false, ErrBlankCategory
	}
	if s.Contains(label) {
		return false, nil
	}
	*s = append(*s, label)
	return true, nil
}
