package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
}

// ReceiptItem is a single printed line. All amounts are copied from the
// stored document line.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitLabel string          `json:"unit_label,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount_percent"`
	TaxRate   decimal.Decimal `json:"tax_rate_percent"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is not persisted; it is composed from a stored document at print time.
type Receipt struct {
	Header          ReceiptHeader   `json:"header"`
	Title           string          `json:"title"`
	Reference       string          `json:"reference"`
	Date            string          `json:"date"`
	Customer        string          `json:"customer,omitempty"`
	CustomerGSTIN   string          `json:"customer_gstin,omitempty"`
	TaxInclusive    bool            `json:"tax_inclusive"`
	PaymentStatus   string          `json:"payment_status"`
	Items           []ReceiptItem   `json:"items"`
	SubTotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ExtraCharge     decimal.Decimal `json:"extra_charge"`
	ExtraChargeNote string          `json:"extra_charge_note,omitempty"`
	Total           decimal.Decimal `json:"total"`
	Paid            decimal.Decimal `json:"paid"`
	Due             decimal.Decimal `json:"due"`
}
