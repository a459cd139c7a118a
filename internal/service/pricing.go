package service

import (
	"github.com/shopspring/decimal"
)

// LineAmount 計價輸入，單價為下單當下快照
type LineAmount struct {
	UnitPriceCents int64
	Quantity       int32
}

// PricingCalculator 純計算，無任何I/O
// 稅率由外部注入，不使用隱藏的全域狀態
type PricingCalculator struct {
	taxRate decimal.Decimal
}

func NewPricingCalculator(taxRate decimal.Decimal) *PricingCalculator {
	return &PricingCalculator{taxRate: taxRate}
}

func (c *PricingCalculator) TaxRate() decimal.Decimal {
	return c.taxRate
}

// Totals 計算小計/稅額/總計(最小幣值單位)
// 稅額無條件捨去，不是四捨五入，金額會直接開給客戶所以必須完全一致
func (c *PricingCalculator) Totals(lines []LineAmount) (subtotalCents, taxCents, totalCents int64) {
	for _, line := range lines {
		subtotalCents += line.UnitPriceCents * int64(line.Quantity)
	}

	taxCents = decimal.NewFromInt(subtotalCents).Mul(c.taxRate).Floor().IntPart()
	totalCents = subtotalCents + taxCents
	return subtotalCents, taxCents, totalCents
}
