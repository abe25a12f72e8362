package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/apperror"
	"github.com/sangkips/billdesk-api/pkg/logger"
	"github.com/sangkips/billdesk-api/pkg/printer"
)

const defaultReceiptWidth = 32 // 58mm paper

// PrinterService handles receipt formatting and thermal printing.
// Receipts are composed from stored document fields only.
type PrinterService struct {
	printer      printer.Printer
	documentRepo repository.DocumentRepository
	store        config.StoreConfig
	width        int
	log          zerolog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	documentRepo repository.DocumentRepository,
	store config.StoreConfig,
	width int,
) *PrinterService {
	if width <= 0 {
		width = defaultReceiptWidth
	}
	return &PrinterService{
		printer:      p,
		documentRepo: documentRepo,
		store:        store,
		width:        width,
		log:          logger.WithComponent("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.IsConnected(),
		Type:       kind,
		Width:      s.width,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:    s.header(),
		Title:     "PRINTER TEST",
		Reference: "TEST-000001",
		Date:      time.Now().Format("2006-01-02 15:04"),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitLabel: "pc", UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, UnitLabel: "pc", UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		PaymentStatus: enum.PaymentStatusPaid.String(),
		SubTotal:      decimal.NewFromInt(20),
		Total:         decimal.NewFromInt(20),
		Paid:          decimal.NewFromInt(20),
	}

	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintDocumentReceipt fetches a document (with lines) and prints its receipt.
func (s *PrinterService) PrintDocumentReceipt(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Receipt, error) {
	doc, err := s.documentRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	if !actor.CanAccess(doc.UserID) {
		return nil, apperror.ErrForbidden
	}
	if doc.Status == enum.DocumentStatusCanceled {
		return nil, apperror.NewBadRequestError("Canceled documents cannot be printed")
	}

	receipt := BuildReceipt(doc, s.header())

	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(data); err != nil {
		s.log.Error().Err(err).Str("reference", doc.Reference).Msg("printer error")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

func (s *PrinterService) header() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName: s.store.Name,
		Address:   s.store.Address,
		Phone:     s.store.Phone,
		GSTIN:     s.store.GSTIN,
	}
}

// BuildReceipt copies a stored document into a Receipt. Nothing is
// recalculated.
func BuildReceipt(doc *entity.Document, header entity.ReceiptHeader) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:        header,
		Title:         receiptTitle(doc.Type),
		Reference:     doc.Reference,
		Date:          doc.Date.Format("2006-01-02"),
		Customer:      doc.CustomerName,
		TaxInclusive:  doc.TaxMode.IsInclusive(),
		PaymentStatus: doc.PaymentStatus.String(),
		SubTotal:      doc.SubTotal,
		Tax:           doc.Tax,
		ExtraCharge:   doc.ExtraCharge,
		Total:         doc.Total,
		Paid:          doc.PaidAmount,
		Due:           doc.DueAmount,
	}
	if doc.ExtraChargeNote != nil {
		receipt.ExtraChargeNote = *doc.ExtraChargeNote
	}
	if doc.Customer != nil && doc.Customer.GSTIN != nil {
		receipt.CustomerGSTIN = *doc.Customer.GSTIN
	}

	for _, l := range doc.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitLabel: l.UnitLabel,
			UnitPrice: l.DisplayPrice,
			Discount:  l.DiscountPercent,
			TaxRate:   l.TaxRatePercent,
			Total:     l.LineTotal,
		})
	}
	return receipt
}

func receiptTitle(t enum.DocumentType) string {
	switch t {
	case enum.DocumentTypeInvoice:
		return "TAX INVOICE"
	case enum.DocumentTypeEstimate:
		return "ESTIMATE"
	case enum.DocumentTypePettyCash:
		return "PETTY CASH"
	default:
		return "QUOTATION"
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(billing.MoneyPlaces)
}

// FormatReceipt converts a Receipt into ESC/POS bytes for a printer with
// width characters per line.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	if width <= 0 {
		width = defaultReceiptWidth
	}
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.GSTIN != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTIN)
	}
	if r.Title != "" {
		doc.LineFeed().SetBold(true).Text(r.Title).SetBold(false)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("No:", r.Reference).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.CustomerGSTIN != "" {
		doc.KeyValue("GSTIN:", r.CustomerGSTIN)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s/%s", money(item.UnitPrice), item.UnitLabel)
		}
		if item.Discount.IsPositive() {
			doc.TextF("  less %s%%", item.Discount.String())
		}
		if item.TaxRate.IsPositive() {
			doc.TextF("  GST %s%%", item.TaxRate.String())
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", money(r.SubTotal))
	if r.Tax.IsPositive() {
		doc.KeyValue("GST:", money(r.Tax))
	}
	if r.ExtraCharge.IsPositive() {
		label := "Extra:"
		if r.ExtraChargeNote != "" {
			label = r.ExtraChargeNote + ":"
		}
		doc.KeyValue(label, money(r.ExtraCharge))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money(r.Total)).
		SetBold(false)
	if r.TaxInclusive {
		doc.Text("(Tax included)")
	}

	if r.Paid.IsPositive() {
		doc.KeyValue("Paid:", money(r.Paid))
	}
	if r.Due.IsPositive() {
		doc.KeyValue("Due:", money(r.Due))
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
