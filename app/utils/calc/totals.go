package calc

import (
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
	LineCount int             `json:"line_count"`
}

// ComputeTotals prices each line at the product's current price. A line whose product was
// not loaded contributes its quantity but no amount.
func ComputeTotals(items []models.CartItem) Totals {
	totals := Totals{Subtotal: decimal.Zero, LineCount: len(items)}
	for _, item := range items {
		totals.ItemCount += item.Quantity
		if item.Product == nil {
			continue
		}
		totals.Subtotal = totals.Subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return totals
}

func FormatBRL(amount decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: "R$ ", Precision: 2, Thousand: ".", Decimal: ","}
	return ac.FormatMoneyDecimal(amount)
}
