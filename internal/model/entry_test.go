package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		want  string
	}{
		{"", false, "0"},
		{"   ", false, "0"},
		{"abc", false, "0"},
		{"8", true, "8"},
		{" 2.5 ", true, "2.5"},
		{"0", true, "0"},
	}
	for _, tt := range tests {
		got := model.ParseNumber(tt.input)
		if got.Valid != tt.valid {
			t.Errorf("ParseNumber(%q).Valid = %v, want %v", tt.input, got.Valid, tt.valid)
		}
		if !got.OrZero().Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseNumber(%q).OrZero() = %s, want %s", tt.input, got.OrZero(), tt.want)
		}
	}
}

func TestNumberUnmarshalLenient(t *testing.T) {
	var v struct {
		A model.Number `json:"a"`
		B model.Number `json:"b"`
		C model.Number `json:"c"`
		D model.Number `json:"d"`
		E model.Number `json:"e"`
	}
	data := `{"a": 8, "b": "2.5", "c": "", "d": null, "e": "n/a"}`
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !v.A.Valid || v.A.String() != "8" {
		t.Errorf("a = %+v, want 8", v.A)
	}
	if !v.B.Valid || v.B.String() != "2.5" {
		t.Errorf("b = %+v, want 2.5", v.B)
	}
	for name, n := range map[string]model.Number{"c": v.C, "d": v.D, "e": v.E} {
		if n.Valid {
			t.Errorf("%s should decode as absent, got %v", name, n)
		}
	}
}

func TestEntryJSONRoundTrip(t *testing.T) {
	e := model.Entry{
		ID:                 "0190a1b2-0000-7000-8000-000000000001",
		Date:               "2025-06-01",
		ProjectName:        "Bridge",
		StandardHours:      model.NumberFromFloat(8),
		NightOvertimeHours: model.ParseNumber("1.25"),
		Mileage:            model.NumberFromFloat(20),
		OtherExpense:       model.ParseNumber("12.40"),
		ExpenseCategory:    "Tools",
		Notes:              "poured footings",
		Timestamp:          time.Date(2025, 6, 1, 17, 4, 5, 0, time.UTC),
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back model.Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(e) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, e)
	}
}

func TestEntryIDSurvivesRepeatedSaves(t *testing.T) {
	e := model.Entry{ID: `job<1>&2 "b"\c`, Date: "2025-06-01"}
	for i := range 3 {
		data, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("cycle %d: Marshal: %v", i, err)
		}
		var back model.Entry
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("cycle %d: Unmarshal: %v", i, err)
		}
		if back.ID != e.ID {
			t.Fatalf("cycle %d: ID = %q, want %q", i, back.ID, e.ID)
		}
		e = back
	}
}

func TestEntryUnmarshalLegacy(t *testing.T) {
	data := `{"id": 1717245000000, "date": "2025-06-01", "standardHours": "8",
		"overtimeHours": "", "gasExpense": "45.10", "notes": "x",
		"timestamp": "2025-06-01T12:30:00.000Z"}`
	var e model.Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if e.ID != "1717245000000" {
		t.Errorf("ID = %q, want numeric id as string", e.ID)
	}
	if e.OvertimeHours.Valid {
		t.Error("blank overtimeHours should be absent")
	}
	if e.OtherExpense.String() != "45.1" || e.ExpenseCategory != "Fuel" {
		t.Errorf("gasExpense not folded: otherExpense=%s category=%q", e.OtherExpense, e.ExpenseCategory)
	}
}

func TestHoursAccessors(t *testing.T) {
	var e model.Entry
	for i, c := range model.HourCategories {
		e.SetHours(c, model.NumberFromFloat(float64(i+1)))
	}
	for i, c := range model.HourCategories {
		want := decimal.NewFromInt(int64(i + 1))
		if got := e.Hours(c).OrZero(); !got.Equal(want) {
			t.Errorf("Hours(%s) = %s, want %s", c, got, want)
		}
	}
	if e.StandardHours.OrZero().IntPart() != 2 {
		t.Errorf("StandardHours = %s, want 2", e.StandardHours)
	}
}

func TestExpenseCategorySetAdd(t *testing.T) {
	set := model.ExpenseCategorySet{"Fuel"}
	added, err := set.Add("  Permits ")
	if err != nil || !added {
		t.Fatalf("Add(Permits) = %v, %v", added, err)
	}
	added, err = set.Add("Fuel")
	if err != nil || added {
		t.Errorf("Add(Fuel) duplicate = %v, %v; want false, nil", added, err)
	}
	if _, err := set.Add(" "); err != model.ErrBlankCategory {
		t.Errorf("Add(blank) err = %v, want ErrBlankCategory", err)
	}
	if len(set) != 2 || set[1] != "Permits" {
		t.Errorf("set = %v, want [Fuel Permits]", set)
	}
}

func TestRateTableMerge(t *testing.T) {
	memo := model.RateTable{model.HourStandard: model.NumberFromFloat(50)}
	profile := model.RateTable{
		model.HourStandard: model.NumberFromFloat(40),
		model.HourOvertime: model.NumberFromFloat(75),
	}
	merged := memo.Merge(profile)
	if merged.Rate(model.HourStandard).IntPart() != 50 {
		t.Errorf("standard = %s, want 50", merged.Rate(model.HourStandard))
	}
	if merged.Rate(model.HourOvertime).IntPart() != 75 {
		t.Errorf("overtime = %s, want 75", merged.Rate(model.HourOvertime))
	}
	if merged.Has(model.HourNight) || !merged.Rate(model.HourNight).IsZero() {
		t.Error("night rate should be unset and zero")
	}
}
