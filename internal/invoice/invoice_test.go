package invoice_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Tiliavir/contractor-time-tracker/internal/invoice"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

func descriptions(inv invoice.Invoice) []string {
	var out []string
	for _, li := range inv.LineItems {
		out = append(out, li.Description)
	}
	return out
}

var _ = Describe("Build", func() {
	var (
		first  model.Entry
		second model.Entry
		rates  model.RateTable
	)

	BeforeEach(func() {
		first = model.Entry{ID: "1", Date: "2025-06-01", StandardHours: model.NumberFromFloat(8), Mileage: model.NumberFromFloat(20)}
		second = model.Entry{ID: "2", Date: "2025-06-02", OvertimeHours: model.NumberFromFloat(2), Mileage: model.NumberFromFloat(10)}
		rates = model.RateTable{model.HourStandard: model.NumberFromFloat(50)}
	})

	It("builds the reference invoice", func() {
		inv := invoice.Build([]model.Entry{first}, rates, totals.DefaultMileageRate)

		Expect(inv.LineItems).To(HaveLen(2))

		labor := inv.LineItems[0]
		Expect(labor.Kind).To(Equal(invoice.KindLabor))
		Expect(labor.Description).To(Equal("Standard Labor"))
		Expect(money.Quantity(*labor.Quantity, 2)).To(Equal("8.00"))
		Expect(money.Rate(*labor.Rate)).To(Equal("$50.00"))
		Expect(money.Format(labor.Amount)).To(Equal("$400.00"))

		mileage := inv.LineItems[1]
		Expect(mileage.Kind).To(Equal(invoice.KindReimbursement))
		Expect(mileage.Description).To(Equal("Mileage"))
		Expect(money.Quantity(*mileage.Quantity, 1)).To(Equal("20.0"))
		Expect(money.Rate(*mileage.Rate)).To(Equal("$0.725"))
		Expect(money.Format(mileage.Amount)).To(Equal("$14.50"))

		Expect(money.Format(inv.GrandTotal)).To(Equal("$414.50"))
	})

	It("omits categories whose summed hours are zero", func() {
		first.NightHours = model.NumberFromFloat(0)
		inv := invoice.Build([]model.Entry{first, second}, rates, totals.DefaultMileageRate)

		Expect(descriptions(inv)).To(Equal([]string{"Standard Labor", "Overtime Labor", "Mileage"}))
	})

	It("keeps a labor line with a zero rate when hours exist", func() {
		inv := invoice.Build([]model.Entry{second}, rates, totals.DefaultMileageRate)

		Expect(inv.Labor()).To(HaveLen(1))
		Expect(inv.Labor()[0].Amount.IsZero()).To(BeTrue())
		Expect(inv.Labor()[0].Rate.IsZero()).To(BeTrue())
	})

	It("emits lump-sum lines for per diem and other expenses", func() {
		e := model.Entry{PerDiem: model.NumberFromFloat(55), OtherExpense: model.ParseNumber("12.25")}
		inv := invoice.Build([]model.Entry{e}, nil, totals.DefaultMileageRate)

		Expect(descriptions(inv)).To(Equal([]string{"Per Diem", "Other Expenses"}))
		for _, li := range inv.LineItems {
			Expect(li.Quantity).To(BeNil())
			Expect(li.Rate).To(BeNil())
		}
		Expect(inv.ReimbursementsTotal.String()).To(Equal("67.25"))
		Expect(inv.LaborTotal.IsZero()).To(BeTrue())
	})

	It("orders labor before reimbursements in category order", func() {
		e := model.Entry{
			WeekendOvertimeHours: model.NumberFromFloat(1),
			DrivingHours:         model.NumberFromFloat(1),
			PerDiem:              model.NumberFromFloat(10),
			Mileage:              model.NumberFromFloat(5),
			NightHours:           model.NumberFromFloat(1),
		}
		inv := invoice.Build([]model.Entry{e}, nil, totals.DefaultMileageRate)

		Expect(descriptions(inv)).To(Equal([]string{
			"Driving Time", "Night Labor", "Weekend Overtime Labor", "Mileage", "Per Diem",
		}))
	})

	It("keeps grandTotal equal to labor plus reimbursements", func() {
		rates[model.HourOvertime] = model.ParseNumber("72.50")
		second.PerDiem = model.NumberFromFloat(40)
		second.OtherExpense = model.ParseNumber("3.33")
		inv := invoice.Build([]model.Entry{first, second}, rates, totals.DefaultMileageRate)

		Expect(inv.GrandTotal.Equal(inv.LaborTotal.Add(inv.ReimbursementsTotal))).To(BeTrue())
		Expect(inv.LaborTotal.String()).To(Equal("545"))
		Expect(inv.ReimbursementsTotal.String()).To(Equal("65.08"))
	})

	It("reuses the aggregator totals", func() {
		inv := invoice.Build([]model.Entry{first, second}, rates, totals.DefaultMileageRate)

		Expect(inv.Totals.Mileage.String()).To(Equal("30"))
		Expect(inv.Totals.MileagePayment.String()).To(Equal("21.75"))
	})
})

var _ = Describe("Validate", func() {
	var (
		draft    model.InvoiceDraft
		selected []model.Entry
	)

	BeforeEach(func() {
		draft = model.InvoiceDraft{ClientName: "Acme"}
		selected = []model.Entry{{StandardHours: model.NumberFromFloat(8)}}
	})

	build := func() invoice.Invoice {
		return invoice.Build(selected, model.RateTable{model.HourStandard: model.NumberFromFloat(50)}, totals.DefaultMileageRate)
	}

	It("accepts a complete draft", func() {
		Expect(invoice.Validate(draft, selected, build())).To(Succeed())
	})

	It("rejects an empty selection", func() {
		selected = nil
		Expect(invoice.Validate(draft, selected, build())).To(MatchError(invoice.ErrEmptySelection))
	})

	It("rejects a missing client", func() {
		draft.ClientName = ""
		Expect(invoice.Validate(draft, selected, build())).To(MatchError(invoice.ErrMissingClient))
	})

	It("rejects a zero total", func() {
		inv := invoice.Build(selected, nil, totals.DefaultMileageRate)
		Expect(invoice.Validate(draft, selected, inv)).To(MatchError(invoice.ErrZeroTotal))
	})

	It("keeps the disclaimer wording", func() {
		Expect(invoice.Disclaimer).To(ContainSubstring("No taxes have been withheld"))
	})
})

var _ = Describe("LineItem.Figures", func() {
	It("shows hours with two decimals and miles with one", func() {
		inv := invoice.Build([]model.Entry{{
			StandardHours: model.NumberFromFloat(7.5),
			Mileage:       model.NumberFromFloat(20),
			PerDiem:       model.NumberFromFloat(55),
		}}, model.RateTable{model.HourStandard: model.ParseNumber("62.5")}, totals.DefaultMileageRate)

		Expect(inv.LineItems).To(HaveLen(3))
		qty, rate := inv.LineItems[0].Figures()
		Expect([]string{qty, rate}).To(Equal([]string{"7.50 hr", "$62.50/hr"}))
		qty, rate = inv.LineItems[1].Figures()
		Expect([]string{qty, rate}).To(Equal([]string{"20.0 mi", "$0.725/mi"}))
	})

	It("is empty for lump sums", func() {
		inv := invoice.Build([]model.Entry{{PerDiem: model.NumberFromFloat(55)}}, nil, totals.DefaultMileageRate)
		qty, rate := inv.LineItems[0].Figures()
		Expect(qty).To(BeEmpty())
		Expect(rate).To(BeEmpty())
	})
})
