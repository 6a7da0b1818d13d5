package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paperstack/docshare/middleware"
	"github.com/paperstack/docshare/models"
	"github.com/paperstack/docshare/services/document"
	"github.com/paperstack/docshare/utils"
)

// CreateDocumentRequest represents a request to create a document.
// There is deliberately no owner field; ownership always comes from the
// authenticated identity.
type CreateDocumentRequest struct {
	Title   string             `json:"title" validate:"required"`
	Content string             `json:"content" validate:"required"`
	Access  models.AccessLevel `json:"access" validate:"omitempty,oneof=public private role"`
}

// UpdateDocumentRequest represents a partial update to a document
type UpdateDocumentRequest struct {
	Title   *string             `json:"title,omitempty" validate:"omitempty,min=1"`
	Content *string             `json:"content,omitempty"`
	Access  *models.AccessLevel `json:"access,omitempty" validate:"omitempty,oneof=public private role"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Access    models.AccessLevel `json:"access"`
	OwnerID   uuid.UUID          `json:"owner_id"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

// DocumentPageResponse represents a page of documents. Metadata is null when
// the request disabled paging.
type DocumentPageResponse struct {
	Documents []DocumentResponse     `json:"documents"`
	Metadata  *document.PageMetadata `json:"metadata"`
}

// DeleteDocumentResponse confirms a deletion
type DeleteDocumentResponse struct {
	Message string `json:"message"`
}

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	svc    *document.Service
	logger *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(svc *document.Service, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		svc:    svc,
		logger: logger,
	}
}

// HandleCreateDocument handles POST /api/v1/documents
func (h *DocumentHandler) HandleCreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, ok := viewerFromContext(w, h.logger, r)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	doc, err := h.svc.Create(ctx, viewer, document.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Access:  req.Access,
	})
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, documentToResponse(doc))
}

// HandleListDocuments handles GET /api/v1/documents
func (h *DocumentHandler) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, err := parsePagination(r)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	page, err := h.svc.List(ctx, pagination)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, pageToResponse(page))
}

// HandleGetDocument handles GET /api/v1/documents/{id}
func (h *DocumentHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, ok := viewerFromContext(w, h.logger, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid document ID format", nil)
		return
	}

	doc, err := h.svc.Get(ctx, viewer, id)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, documentToResponse(doc))
}

// HandleListDocumentsByAccess handles GET /api/v1/documents/access.
// The only filter applied is access-level equality; ownership is not
// consulted, matching the established contract for this endpoint.
func (h *DocumentHandler) HandleListDocumentsByAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	access := models.AccessLevel(r.URL.Query().Get("access"))

	pagination, err := parsePagination(r)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	page, err := h.svc.ListByAccess(ctx, access, pagination)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, pageToResponse(page))
}

// HandleSearchDocuments handles GET /api/v1/documents/search
func (h *DocumentHandler) HandleSearchDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, ok := viewerFromContext(w, h.logger, r)
	if !ok {
		return
	}

	term := r.URL.Query().Get("q")

	pagination, err := parsePagination(r)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	page, err := h.svc.Search(ctx, viewer, term, pagination)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, pageToResponse(page))
}

// HandleUpdateDocument handles PUT /api/v1/documents/{id}
func (h *DocumentHandler) HandleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, ok := viewerFromContext(w, h.logger, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid document ID format", nil)
		return
	}

	var req UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	doc, err := h.svc.Update(ctx, viewer, id, document.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
		Access:  req.Access,
	})
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, documentToResponse(doc))
}

// HandleDeleteDocument handles DELETE /api/v1/documents/{id}
func (h *DocumentHandler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, ok := viewerFromContext(w, h.logger, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid document ID format", nil)
		return
	}

	if err := h.svc.Delete(ctx, viewer, id); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, DeleteDocumentResponse{Message: "Document deleted successfully"})
}

// viewerFromContext extracts the authenticated viewer, writing a 401 when
// the identity is missing (auth middleware not run or failed silently)
func viewerFromContext(w http.ResponseWriter, logger *zap.Logger, r *http.Request) (document.Viewer, bool) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		logger.Error("identity not found in context")
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return document.Viewer{}, false
	}
	return document.Viewer{UserID: identity.UserID, RoleID: identity.RoleID}, true
}

// parsePagination reads limit/offset query parameters with defaults of
// 10 and 0. Non-numeric values are rejected; a zero limit disables paging.
func parsePagination(r *http.Request) (document.Pagination, error) {
	p := document.DefaultPagination()

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return p, utils.NewFieldValidationError("limit", "limit must be a number")
		}
		p.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return p, utils.NewFieldValidationError("offset", "offset must be a number")
		}
		p.Offset = offset
	}

	return p, nil
}

// documentToResponse converts a Document model to a DocumentResponse
func documentToResponse(d *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Access:    d.Access,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
	}
}

// pageToResponse converts a service page to its response shape
func pageToResponse(page *document.Page) DocumentPageResponse {
	docs := make([]DocumentResponse, len(page.Documents))
	for i, d := range page.Documents {
		docs[i] = documentToResponse(d)
	}
	return DocumentPageResponse{
		Documents: docs,
		Metadata:  page.Metadata,
	}
}
