package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
)

const (
	documentsSheet = "Documents"
	linesSheet     = "Lines"
)

var (
	documentColumns = []interface{}{
		"Reference", "Type", "Status", "Date", "Customer", "Tax Mode",
		"Subtotal", "GST", "Extra Charge", "Total", "Payment Status", "Paid", "Due",
	}
	lineColumns = []interface{}{
		"Reference", "Position", "Item", "Unit", "Quantity", "Base Price", "Display Price",
		"Discount %", "GST %", "Taxable", "GST", "Line Total",
	}
)

// ExportService writes stored documents to spreadsheets
type ExportService struct {
	documentRepo repository.DocumentRepository
}

// NewExportService creates a new export service
func NewExportService(documentRepo repository.DocumentRepository) *ExportService {
	return &ExportService{documentRepo: documentRepo}
}

// ExportDocuments renders every document matching the filter as an xlsx
// workbook with one sheet of headers and one of lines. Amounts are copied
// from the stored documents.
func (s *ExportService) ExportDocuments(ctx context.Context, actor Actor, params *repository.DocumentFilterParams) ([]byte, error) {
	if params == nil {
		params = &repository.DocumentFilterParams{}
	}
	docs, err := s.documentRepo.ListForExport(ctx, actor.scope(), params)
	if err != nil {
		return nil, err
	}
	return WriteDocumentsWorkbook(docs)
}

// WriteDocumentsWorkbook builds the export workbook for docs
func WriteDocumentsWorkbook(docs []entity.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", documentsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(documentsSheet, "A1", &documentColumns); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(linesSheet, "A1", &lineColumns); err != nil {
		return nil, err
	}

	lineRow := 2
	for i, d := range docs {
		row := []interface{}{
			d.Reference,
			d.Type.String(),
			d.Status.String(),
			d.Date.Format("2006-01-02"),
			d.CustomerName,
			d.TaxMode.String(),
			amount(d.SubTotal),
			amount(d.Tax),
			amount(d.ExtraCharge),
			amount(d.Total),
			d.PaymentStatus.String(),
			amount(d.PaidAmount),
			amount(d.DueAmount),
		}
		if err := f.SetSheetRow(documentsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}

		for _, l := range d.Lines {
			row := []interface{}{
				d.Reference,
				l.Position + 1,
				l.Name,
				l.UnitLabel,
				l.Quantity,
				amount(l.BasePrice),
				amount(l.DisplayPrice),
				amount(l.DiscountPercent),
				amount(l.TaxRatePercent),
				amount(l.DiscountedBase),
				amount(l.TaxAmount),
				amount(l.LineTotal),
			}
			if err := f.SetSheetRow(linesSheet, fmt.Sprintf("A%d", lineRow), &row); err != nil {
				return nil, err
			}
			lineRow++
		}
	}

	if err := styleSheets(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func styleSheets(f *excelize.File) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	twoPlaces, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	if err := f.SetRowStyle(documentsSheet, 1, 1, header); err != nil {
		return err
	}
	if err := f.SetRowStyle(linesSheet, 1, 1, header); err != nil {
		return err
	}
	if err := f.SetColStyle(documentsSheet, "G:J", twoPlaces); err != nil {
		return err
	}
	if err := f.SetColStyle(documentsSheet, "L:M", twoPlaces); err != nil {
		return err
	}
	if err := f.SetColStyle(linesSheet, "F:L", twoPlaces); err != nil {
		return err
	}
	if err := f.SetColWidth(documentsSheet, "A", "E", 16); err != nil {
		return err
	}
	return f.SetColWidth(linesSheet, "C", "C", 28)
}

// amount writes a decimal as a spreadsheet number
func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
