/*
lines.go - Line-item parsing and total computation

PURPOSE:
  Turns "item-id:quantity" tokens into priced line items using the item
  catalog, and derives subtotal, tax, and total. This is the single
  rounding site for invoice money: each line amount and the tax are
  rounded to cents here, exactly once, and the rounded decimals are
  carried everywhere else.

VALIDATION:
  A malformed token or a non-positive quantity is rejected before any
  catalog lookup or ledger mutation happens.
*/
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quill/invoice-engine/ledger"
	"github.com/quill/invoice-engine/money"
)

// Line is one priced line item.
type Line struct {
	ItemID      string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Totals holds the derived invoice money, all rounded to cents.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ParseItemInput splits "item-id:quantity" and validates the quantity.
func ParseItemInput(input string) (string, decimal.Decimal, error) {
	parts := strings.Split(input, ":")
	if len(parts) != 2 {
		return "", decimal.Zero, &ledger.InvalidItemFormatError{Input: input}
	}

	itemID, qtyStr := parts[0], parts[1]
	qty, err := decimal.NewFromString(qtyStr)
	if err != nil {
		return "", decimal.Zero, &ledger.InvalidQuantityError{
			Item: itemID, Quantity: qtyStr, Reason: "must be a number",
		}
	}
	if !qty.IsPositive() {
		return "", decimal.Zero, &ledger.InvalidQuantityError{
			Item: itemID, Quantity: qtyStr, Reason: "must be greater than 0",
		}
	}
	return itemID, qty, nil
}

// computeLines prices each token against the catalog and derives totals.
func (s *Service) computeLines(inputs []string) ([]Line, Totals, error) {
	lines := make([]Line, 0, len(inputs))
	subtotal := decimal.Zero

	for _, input := range inputs {
		itemID, qty, err := ParseItemInput(input)
		if err != nil {
			return nil, Totals{}, err
		}

		item, err := s.Catalog.Item(itemID)
		if err != nil {
			return nil, Totals{}, err
		}

		amount := money.RoundToCents(item.Rate.Mul(qty))
		lines = append(lines, Line{
			ItemID:      itemID,
			Description: item.Description,
			Quantity:    qty,
			Unit:        item.Unit,
			Rate:        item.Rate,
			Amount:      amount,
		})
		subtotal = subtotal.Add(amount)
	}

	taxRate := decimal.NewFromFloat(s.Config.Invoice.TaxRate)
	tax := money.RoundToCents(subtotal.Mul(taxRate))

	return lines, Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}, nil
}
