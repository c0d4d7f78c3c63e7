// Package rest provides HTTP handlers for inventory operations.
package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"inventory-service/internal/codec"
	"inventory-service/internal/service"
	"inventory-service/internal/store"
	"inventory-service/pkg/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// maxUploadMemory bounds how much of the multipart form is held in memory
// before spilling to disk. It is not a payload size limit; callers should
// keep images reasonably small since every byte travels the compress path.
const maxUploadMemory = 10 << 20

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new inventory HTTP handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the inventory service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FetchAll)
		r.Post("/", h.Save)
		r.Get("/filter/{name}", h.FetchByName)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FetchByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// productForm carries the multipart form fields shared by create and update.
type productForm struct {
	Name       string `validate:"required,max=100"`
	Price      int64  `validate:"min=0"`
	Account    int64  `validate:"min=0"`
	CategoryID int64  `validate:"required,min=1"`
}

// FetchByID retrieves a product by its ID.
func (h *Handler) FetchByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to fetch product by ID", "ID", id)
	env, outcome := h.service.FetchByID(r.Context(), id)
	web.RespondJSON(w, mLogger, outcome.HTTPStatus(), env)
}

// FetchByName retrieves the products whose name contains the given substring.
func (h *Handler) FetchByName(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	name := chi.URLParam(r, "name")

	mLogger.DebugContext(r.Context(), "Received request to fetch products by name", "name", name)
	env, outcome := h.service.FetchByName(r.Context(), name)
	web.RespondJSON(w, mLogger, outcome.HTTPStatus(), env)
}

// FetchAll retrieves a list of all products.
func (h *Handler) FetchAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	mLogger.DebugContext(r.Context(), "Received request to fetch all products")
	env, outcome := h.service.FetchAll(r.Context())
	web.RespondJSON(w, mLogger, outcome.HTTPStatus(), env)
}

// Save handles the creation of a new product. The uploaded picture is
// compressed here, before the service is invoked.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	form, picture, ok := h.parseProductForm(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create product", "name", form.Name)
	env, outcome := h.service.Save(r.Context(), store.Product{
		Name:    form.Name,
		Price:   form.Price,
		Account: form.Account,
		Picture: picture,
	}, form.CategoryID)
	if len(env.Products) == 1 {
		mLogger.InfoContext(r.Context(), "Product created successfully", "ID", env.Products[0].ID, "name", form.Name)
	}
	web.RespondJSON(w, mLogger, outcome.HTTPStatus(), env)
}

// Update overwrites an existing product with the submitted form values.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	form, picture, ok := h.parseProductForm(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	env, outcome := h.service.Update(r.Context(), store.Product{
		Name:    form.Name,
		Price:   form.Price,
		Account: form.Account,
		Picture: picture,
	}, form.CategoryID, id)
	if len(env.Products) == 1 {
		mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", id)
	}
	web.RespondJSON(w, mLogger, outcome.HTTPStatus(), env)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	env, outcome := h.service.DeleteByID(r.Context(), id)
	web.RespondJSON(w, mLogger, outcome.HTTPStatus(), env)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// parseProductForm decodes the multipart form shared by create and update,
// validates it, and compresses the uploaded picture. On failure it writes
// the error response itself and reports false.
func (h *Handler) parseProductForm(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (productForm, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		mLogger.ErrorContext(r.Context(), "Error parsing multipart form", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid multipart form")
		return productForm{}, nil, false
	}

	form := productForm{Name: r.FormValue("name")}
	var err error
	if form.Price, err = parseFormInt(r, "price"); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid price")
		return productForm{}, nil, false
	}
	if form.Account, err = parseFormInt(r, "account"); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid account")
		return productForm{}, nil, false
	}
	if form.CategoryID, err = parseFormInt(r, "categoryId"); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid categoryId")
		return productForm{}, nil, false
	}

	if err := h.validate.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			// If the error is a validation error, we can extract field-specific errors.
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "max", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return productForm{}, nil, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request form", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request form")
		return productForm{}, nil, false
	}

	file, _, err := r.FormFile("picture")
	if err != nil {
		mLogger.WarnContext(r.Context(), "Missing picture in multipart form", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Missing picture")
		return productForm{}, nil, false
	}
	defer func() { _ = file.Close() }()

	picture, err := io.ReadAll(file)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error reading picture from multipart form", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Failed to read picture")
		return productForm{}, nil, false
	}

	return form, codec.Compress(picture), true
}

// parseFormInt parses a required integer form field.
func parseFormInt(r *http.Request, field string) (int64, error) {
	return strconv.ParseInt(r.FormValue(field), 10, 64)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}
