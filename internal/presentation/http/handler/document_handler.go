package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentHandler handles quotation, estimate, invoice and petty cash
// documents. The document type is part of the payload, not the route.
type DocumentHandler struct {
	documentService *service.DocumentService
	exportService   *service.ExportService
	now             func() time.Time
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService, exportService *service.ExportService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		exportService:   exportService,
		now:             time.Now,
	}
}

// List handles listing documents
func (h *DocumentHandler) List(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	var req request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params, err := req.ToParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), &service.ListDocumentsInput{
		Actor:  actor,
		Filter: *params,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Documents retrieved successfully", result)
}

// Create handles creating a document
func (h *DocumentHandler) Create(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	var req request.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), &service.CreateDocumentInput{
		Actor:         actor,
		Type:          *req.Type,
		Status:        req.Status,
		DocumentInput: in,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document created successfully", doc)
}

// Get handles getting a single document with its lines
func (h *DocumentHandler) Get(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "document")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved successfully", doc)
}

// Update handles replacing the contents of a draft
func (h *DocumentHandler) Update(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "document")
	if !ok {
		return
	}

	var req request.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), &service.UpdateDocumentInput{
		Actor:         actor,
		ID:            id,
		DocumentInput: in,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document updated successfully", doc)
}

// SwitchMode toggles a draft between tax-exclusive and tax-inclusive pricing
func (h *DocumentHandler) SwitchMode(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "document")
	if !ok {
		return
	}

	doc, err := h.documentService.SwitchDocumentMode(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, fmt.Sprintf("Document switched to %s pricing", doc.TaxMode), doc)
}

// UpdateStatus handles document status transitions
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "document")
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.UpdateStatus(c.Request.Context(), actor, id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document status updated", doc)
}

// RecordPayment handles recording a payment against an issued document
func (h *DocumentHandler) RecordPayment(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "document")
	if !ok {
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		Actor:      actor,
		DocumentID: id,
		Amount:     req.Amount,
		Method:     req.Method,
		Note:       req.Note,
		PaidAt:     req.PaidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", doc)
}

// Delete handles deleting a draft
func (h *DocumentHandler) Delete(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "document")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export streams the filtered documents as an xlsx workbook
func (h *DocumentHandler) Export(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	var req request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params, err := req.ToParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.exportService.ExportDocuments(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("documents-%s.xlsx", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
