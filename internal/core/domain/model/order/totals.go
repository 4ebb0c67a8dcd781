package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Totals is the monetary snapshot of an order, fixed at creation time.
// It is never recomputed from line items afterwards: the figures a buyer
// agreed to are part of the audit record, regardless of later price changes.
type Totals struct {
	subtotal     kernel.Money
	discount     kernel.Money
	tax          kernel.Money
	shippingCost kernel.Money
	total        kernel.Money
}

// NewTotals creates the monetary snapshot with validation.
// All five figures must carry the same currency, and the total must equal
// subtotal - discount + tax + shippingCost.
func NewTotals(subtotal, discount, tax, shippingCost, total kernel.Money) (Totals, error) {
	if err := errors.Join(
		subtotal.Validate(),
		discount.Validate(),
		tax.Validate(),
		shippingCost.Validate(),
		total.Validate(),
	); err != nil {
		return Totals{}, err
	}

	currency := subtotal.Currency()
	for _, m := range []kernel.Money{discount, tax, shippingCost, total} {
		if m.Currency() != currency {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(
				"currency",
				fmt.Errorf("mixed currencies %s and %s in order totals", currency, m.Currency()),
			)
		}
	}

	expected := subtotal.Amount().Sub(discount.Amount()).Add(tax.Amount()).Add(shippingCost.Amount())
	if !expected.Equal(total.Amount()) {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("total %s does not match subtotal - discount + tax + shipping = %s",
				total.Amount(), expected),
		)
	}

	return Totals{
		subtotal:     subtotal,
		discount:     discount,
		tax:          tax,
		shippingCost: shippingCost,
		total:        total,
	}, nil
}

// Subtotal returns the sum of line amounts before adjustments.
func (t Totals) Subtotal() kernel.Money { return t.subtotal }

// Discount returns the discount magnitude (stored positive, applied negative).
func (t Totals) Discount() kernel.Money { return t.discount }

// Tax returns the tax amount.
func (t Totals) Tax() kernel.Money { return t.tax }

// ShippingCost returns the shipping cost.
func (t Totals) ShippingCost() kernel.Money { return t.shippingCost }

// Total returns the grand total the buyer agreed to pay.
func (t Totals) Total() kernel.Money { return t.total }

// Currency returns the ISO 4217 code shared by all figures.
func (t Totals) Currency() string { return t.subtotal.Currency() }

// Validate returns an error for the zero value.
func (t Totals) Validate() error {
	if t.subtotal.Validate() != nil {
		return errs.NewValueIsRequiredError("totals must be created via NewTotals")
	}
	return nil
}
