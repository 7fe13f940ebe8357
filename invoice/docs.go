package invoice

import (
	"fmt"

	"github.com/quill/invoice-engine/catalog"
	"github.com/quill/invoice-engine/config"
	"github.com/quill/invoice-engine/ledger"
	"github.com/quill/invoice-engine/render"
)

// displayDateLayout is the long-form date used on rendered documents.
const displayDateLayout = "January 02, 2006"

func companyParty(c config.Company) render.Party {
	return render.Party{
		Name:    c.Name,
		Address: c.Address,
		City:    c.City,
		State:   c.State,
		Zip:     c.Zip,
		Country: c.Country,
		Email:   c.Email,
		Phone:   c.Phone,
		TaxID:   c.TaxID,
	}
}

func clientParty(c catalog.Client) render.Party {
	return render.Party{
		Name:    c.Name,
		Contact: c.Contact,
		Address: c.Address,
		City:    c.City,
		State:   c.State,
		Zip:     c.Zip,
		Country: c.Country,
		Email:   c.Email,
	}
}

// buildInvoiceDoc assembles the render document. All decimals are already
// rounded; the float conversion here is display-boundary only.
func (s *Service) buildInvoiceDoc(number string, issue ledger.Date, client catalog.Client, lines []Line, totals Totals) render.Invoice {
	inv := s.Config.Invoice

	items := make([]render.Line, len(lines))
	for i, l := range lines {
		items[i] = render.Line{
			Description: l.Description,
			Quantity:    l.Quantity.InexactFloat64(),
			Unit:        l.Unit,
			Rate:        l.Rate.InexactFloat64(),
			Amount:      l.Amount.InexactFloat64(),
		}
	}

	return render.Invoice{
		Number:         number,
		Date:           issue.Format(displayDateLayout),
		DueDate:        issue.AddDays(inv.DueDays).Format(displayDateLayout),
		Company:        companyParty(s.Config.Company),
		Client:         clientParty(client),
		Items:          items,
		Subtotal:       totals.Subtotal.InexactFloat64(),
		TaxRate:        inv.TaxRate * 100, // percentage for display
		TaxAmount:      totals.TaxAmount.InexactFloat64(),
		Total:          totals.Total.InexactFloat64(),
		CurrencySymbol: inv.CurrencySymbol,
		PaymentTerms:   fmt.Sprintf("Net %d days", inv.DueDays),
	}
}
