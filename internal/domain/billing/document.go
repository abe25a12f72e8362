package billing

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// Document is a caller-owned cart: ordered lines, a document-wide tax mode
// and a flat extra charge. The zero value is an empty exclusive document.
// The mode only changes through SwitchMode. Mutators never write into a
// slice another copy of the Document can see.
type Document struct {
	lines       []LineItem
	mode        enum.TaxMode
	extraCharge decimal.Decimal
}

// NewDocument builds a document, re-deriving each line's display price.
func NewDocument(mode enum.TaxMode, extraCharge decimal.Decimal, lines ...LineItem) Document {
	return Document{
		lines:       Reconcile(lines, mode),
		mode:        mode,
		extraCharge: clampNonNegative(extraCharge),
	}
}

func (d *Document) Mode() enum.TaxMode {
	return d.mode
}

// Lines returns a copy of the lines.
func (d *Document) Lines() []LineItem {
	out := make([]LineItem, len(d.lines))
	copy(out, d.lines)
	return out
}

func (d *Document) Len() int {
	return len(d.lines)
}

func (d *Document) ExtraCharge() decimal.Decimal {
	return d.extraCharge
}

// SetExtraCharge replaces the extra charge; negative values clamp to 0.
func (d *Document) SetExtraCharge(v decimal.Decimal) {
	d.extraCharge = clampNonNegative(v)
}

// Add appends a line, deriving its display price from the document mode.
func (d *Document) Add(line LineItem) {
	line.Quantity = clampQuantity(decimal.NewFromInt(int64(line.Quantity)))
	line.DisplayPrice = line.DisplayPriceFor(d.mode)
	lines := make([]LineItem, len(d.lines), len(d.lines)+1)
	copy(lines, d.lines)
	d.lines = append(lines, line)
}

// Remove drops the line at i.
func (d *Document) Remove(i int) error {
	if i < 0 || i >= len(d.lines) {
		return ErrLineIndexOutOfRange
	}
	lines := make([]LineItem, 0, len(d.lines)-1)
	lines = append(lines, d.lines[:i]...)
	d.lines = append(lines, d.lines[i+1:]...)
	return nil
}

// SetQuantity updates the quantity at i. A quantity of zero or less removes
// the line; anything above MaxQuantity is capped.
func (d *Document) SetQuantity(i, qty int) error {
	if i < 0 || i >= len(d.lines) {
		return ErrLineIndexOutOfRange
	}
	if qty <= 0 {
		return d.Remove(i)
	}
	lines := d.Lines()
	lines[i].Quantity = clampQuantity(decimal.NewFromInt(int64(qty)))
	d.lines = lines
	return nil
}

// SwitchMode flips between inclusive and exclusive pricing and re-derives
// display prices from the stored base prices.
func (d *Document) SwitchMode() {
	d.SetMode(d.mode.Toggled())
}

// SetMode moves the document to mode; a no-op when already there.
func (d *Document) SetMode(mode enum.TaxMode) {
	if d.mode == mode {
		return
	}
	d.mode = mode
	d.lines = Reconcile(d.lines, mode)
}

// Totals aggregates the current lines.
func (d *Document) Totals() Totals {
	return Aggregate(d.lines, d.mode, d.extraCharge)
}
