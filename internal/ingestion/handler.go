package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/JaimeStill/pdf-chat/internal/auth"
	"github.com/JaimeStill/pdf-chat/pkg/handlers"
	"github.com/JaimeStill/pdf-chat/pkg/routes"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const pdfContentType = "application/pdf"

// Handler provides the PDF endpoints. Every route expects auth.Authenticate upstream.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	middleware    []func(http.Handler) http.Handler
}

// NewHandler creates a PDF handler. middleware is applied to every route in the group.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64, middleware ...func(http.Handler) http.Handler) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "pdf"),
		maxUploadSize: maxUploadSize,
		middleware:    middleware,
	}
}

// Routes returns the PDF endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/pdf",
		Tags:        []string{"PDF"},
		Description: "PDF upload, parsing, and selection",
		Middleware:  h.middleware,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/pdf-upload", Handler: h.Upload, OpenAPI: Spec.Upload},
			{Method: "GET", Pattern: "/pdf-list", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "/pdf-parse", Handler: h.Parse, OpenAPI: Spec.Parse},
			{Method: "POST", Pattern: "/pdf-select", Handler: h.Select, OpenAPI: Spec.Select},
		},
	}
}

// PDFRequest identifies a document by the file_id returned from upload.
type PDFRequest struct {
	PDFID string `json:"pdf_id"`
}

func (r PDFRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PDFID, validation.Required),
	)
}

// UploadResponse is returned by a successful upload.
type UploadResponse struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	if r.ContentLength > h.maxUploadSize {
		h.tooLarge(w, fmt.Errorf("content length %d", r.ContentLength))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(w, err)
			return
		}
		handlers.RespondErrorMessage(w, h.logger, http.StatusBadRequest, err, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil || mediaType != pdfContentType {
		handlers.RespondErrorMessage(w, h.logger, http.StatusUnsupportedMediaType,
			fmt.Errorf("rejected content type %q", header.Header.Get("Content-Type")),
			"only PDF files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondErrorMessage(w, h.logger, http.StatusBadRequest, err, "failed to read uploaded file")
		return
	}

	ref, err := h.sys.Upload(r.Context(), data, header.Filename, mediaType, userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, UploadResponse{
		FileID:   ref,
		Filename: header.Filename,
		Message:  "PDF uploaded successfully",
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	items, err := h.sys.List(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if _, err := h.sys.Parse(r.Context(), req.PDFID, userID); err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: "PDF parsed successfully"})
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if _, err := h.sys.Select(r.Context(), req.PDFID, userID); err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: "PDF selected successfully"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (userID uuid.UUID, req PDFRequest, ok bool) {
	id, found := auth.UserID(r.Context())
	if !found {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return userID, req, false
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondErrorMessage(w, h.logger, http.StatusBadRequest, err, "invalid request body")
		return userID, req, false
	}

	if err := req.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return userID, req, false
	}

	return id, req, true
}

func (h *Handler) tooLarge(w http.ResponseWriter, err error) {
	handlers.RespondErrorMessage(w, h.logger, http.StatusRequestEntityTooLarge, err,
		fmt.Sprintf("file exceeds maximum upload size of %d bytes", h.maxUploadSize))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	handlers.RespondErrorMessage(w, h.logger, MapHTTPStatus(err), err, PublicMessage(err))
}
