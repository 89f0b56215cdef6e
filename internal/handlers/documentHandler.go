package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/adapter"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/document"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
)

const uploadFieldName = "file"

type DocumentService interface {
	Upload(ctx context.Context, req document.UploadRequest) (documentModel.Document, error)
	List(ctx context.Context) (documentModel.Listing, error)
	MaxUploadBytes() int64
}

type DocumentHandler struct {
	service DocumentService
}

func NewDocumentHandler(service DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload godoc
// @Summary      Upload a financial document
// @Description  Stores one file sent as multipart/form-data. Allowed types: .pdf, .xlsx, .xls, .docx, .doc, .csv.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The document to store"
// @Success      201  {object}  api.UploadResponse    "Stored document metadata"
// @Failure      400  {object}  api.ErrorResponse     "Missing file, bad name or unsupported type"
// @Failure      413  {object}  api.ErrorResponse     "File too large"
// @Failure      500  {object}  api.ErrorResponse     "Storage error"
// @Security     BearerAuth
// @Router       /documents/upload [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	setBodyDeadline(w, config.UploadBodyTimeout)
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxUploadBytes()+config.MultipartOverheadSize)

	reader, err := r.MultipartReader()
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: expected a multipart/form-data body", document.ErrMissingFile))
		return
	}

	part, err := nextFilePart(reader)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer part.Close()

	doc, err := h.service.Upload(r.Context(), document.UploadRequest{
		Filename: part.FileName(),
		Body:     part,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToUploadResponse(doc))
}

// nextFilePart skips other form fields until the file field shows up.
func nextFilePart(reader *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: form field %q is required", document.ErrMissingFile, uploadFieldName)
		}
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: malformed multipart body: %v", errBadRequest, err)
		}
		if part.FormName() == uploadFieldName && part.FileName() != "" {
			return part, nil
		}
		_ = part.Close()
	}
}

// List godoc
// @Summary      List stored documents
// @Description  Every stored document, newest first, with a count per type.
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Failure      500  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /documents/ [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToListResponse(listing))
}
