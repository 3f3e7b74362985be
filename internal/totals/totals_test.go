package totals_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func equalDec(s string) OmegaMatcher {
	return WithTransform(func(d decimal.Decimal) string { return d.StringFixed(4) }, Equal(dec(s).StringFixed(4)))
}

var _ = Describe("Compute", func() {
	var rate decimal.Decimal

	BeforeEach(func() {
		rate = totals.DefaultMileageRate
	})

	It("returns all-zero totals for no entries", func() {
		t := totals.Compute(nil, rate)

		Expect(t.Entries).To(Equal(0))
		Expect(t.TotalHours).To(equalDec("0"))
		Expect(t.Mileage).To(equalDec("0"))
		Expect(t.MileagePayment).To(equalDec("0"))
		Expect(t.TotalReimbursement).To(equalDec("0"))
		for _, c := range model.HourCategories {
			Expect(t.HoursFor(c)).To(equalDec("0"))
		}
	})

	It("sums the reference scenario", func() {
		entries := []model.Entry{
			{Date: "2025-06-01", StandardHours: model.NumberFromFloat(8), Mileage: model.NumberFromFloat(20)},
			{Date: "2025-06-02", OvertimeHours: model.NumberFromFloat(2), Mileage: model.NumberFromFloat(10)},
		}

		t := totals.Compute(entries, rate)

		Expect(t.HoursFor(model.HourStandard)).To(equalDec("8"))
		Expect(t.HoursFor(model.HourOvertime)).To(equalDec("2"))
		Expect(t.Mileage).To(equalDec("30"))
		Expect(t.MileagePayment).To(equalDec("21.75"))
		Expect(t.TotalHours).To(equalDec("10"))
	})

	It("multiplies mileage by the rate exactly", func() {
		t := totals.Compute([]model.Entry{{Mileage: model.NumberFromFloat(100)}}, rate)

		Expect(t.MileagePayment.String()).To(Equal("72.5"))
		Expect(t.MileagePayment.Equal(t.Mileage.Mul(rate))).To(BeTrue())
	})

	It("treats blank and zero identically", func() {
		blank := model.Entry{
			StandardHours: model.ParseNumber(""),
			Mileage:       model.ParseNumber("   "),
			PerDiem:       model.ParseNumber("n/a"),
			OtherExpense:  model.Number{},
		}
		zero := model.Entry{
			StandardHours: model.NumberFromFloat(0),
			Mileage:       model.NumberFromFloat(0),
			PerDiem:       model.NumberFromFloat(0),
			OtherExpense:  model.NumberFromFloat(0),
		}
		other := model.Entry{StandardHours: model.NumberFromFloat(3), PerDiem: model.NumberFromFloat(40)}

		a := totals.Compute([]model.Entry{blank, other}, rate)
		b := totals.Compute([]model.Entry{zero, other}, rate)

		Expect(a.TotalHours).To(equalDec(b.TotalHours.String()))
		Expect(a.TotalReimbursement).To(equalDec(b.TotalReimbursement.String()))
		Expect(a.PerDiem).To(equalDec("40"))
	})

	It("keeps totalHours equal to the sum of the categories", func() {
		e := model.Entry{}
		for i, c := range model.HourCategories {
			e.SetHours(c, model.NumberFromFloat(float64(i)+0.25))
		}
		t := totals.Compute([]model.Entry{e, e}, rate)

		sum := decimal.Zero
		for _, c := range model.HourCategories {
			sum = sum.Add(t.HoursFor(c))
		}
		Expect(t.TotalHours).To(equalDec(sum.String()))
		Expect(t.TotalHours).To(equalDec("45.5"))
	})

	It("adds mileage payment, per diem and other expense into reimbursement", func() {
		entries := []model.Entry{
			{Mileage: model.NumberFromFloat(10), PerDiem: model.NumberFromFloat(55)},
			{OtherExpense: model.ParseNumber("19.99")},
		}
		t := totals.Compute(entries, rate)

		Expect(t.MileagePayment).To(equalDec("7.25"))
		Expect(t.TotalReimbursement).To(equalDec("82.24"))
	})

	It("honours a configured mileage rate", func() {
		t := totals.Compute([]model.Entry{{Mileage: model.NumberFromFloat(100)}}, dec("0.70"))

		Expect(t.MileagePayment).To(equalDec("70"))
		Expect(t.MileageRate).To(equalDec("0.7"))
	})

	It("does not modify its input", func() {
		entries := []model.Entry{{StandardHours: model.NumberFromFloat(8)}}
		_ = totals.Compute(entries, rate)

		Expect(entries[0].StandardHours.String()).To(Equal("8"))
		Expect(entries[0].Mileage.Valid).To(BeFalse())
	})
})

var _ = Describe("Earnings", func() {
	It("sums only categories present in the rate table", func() {
		entries := []model.Entry{
			{StandardHours: model.NumberFromFloat(8), OvertimeHours: model.NumberFromFloat(2), NightHours: model.NumberFromFloat(5)},
		}
		rates := model.RateTable{
			model.HourStandard: model.NumberFromFloat(50),
			model.HourOvertime: model.NumberFromFloat(75),
		}

		t := totals.Compute(entries, totals.DefaultMileageRate)

		Expect(t.Earnings(rates)).To(equalDec("550"))
		Expect(t.Earnings(nil)).To(equalDec("0"))
	})
})
