package totals_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTotals(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Totals Suite")
}
