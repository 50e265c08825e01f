package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"

	"github.com/username/kasboek/backend/src/ingest"
	"github.com/username/kasboek/backend/src/logger"
	"github.com/username/kasboek/backend/src/security/validation"
	"github.com/username/kasboek/backend/src/store"
	"github.com/username/kasboek/backend/src/utils"
)

const (
	defaultListSkip  = 0
	defaultListLimit = 100
)

// TransactionHandler serves statement upload and transaction read endpoints.
type TransactionHandler struct {
	ingestService  *ingest.Service
	store          *store.TransactionStore
	listCache      *cache.Cache
	maxUploadBytes int64
}

// NewTransactionHandler wires the handler to its collaborators. listCache may
// be nil to disable read caching.
func NewTransactionHandler(ingestService *ingest.Service, txStore *store.TransactionStore, listCache *cache.Cache, maxUploadBytes int64) *TransactionHandler {
	return &TransactionHandler{
		ingestService:  ingestService,
		store:          txStore,
		listCache:      listCache,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleUpload ingests a multipart statement file (field "file") and responds
// with the persisted transactions, HTTP 201.
func (h *TransactionHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.maxUploadBytes)
		utils.SendJSONError(w, fmt.Sprintf("failed to process upload or file too large (max %d MB)", h.maxUploadBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.maxUploadBytes {
		ctxLogger.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", h.maxUploadBytes)
		utils.SendJSONError(w, fmt.Sprintf("file too large, max %d MB", h.maxUploadBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateFileContent(file, fileHeader.Filename); err != nil {
		ctxLogger.Warn("File content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		ctxLogger.Error("Failed to read uploaded file", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "failed to read uploaded file", http.StatusInternalServerError)
		return
	}

	ctxLogger.Info("Processing statement upload", "filename", fileHeader.Filename, "size", fileHeader.Size)

	transactions, err := h.ingestService.Ingest(r.Context(), fileHeader.Filename, data)
	if err != nil {
		h.sendIngestError(w, r, err)
		return
	}

	if h.listCache != nil {
		h.listCache.Flush()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactions); err != nil {
		ctxLogger.Error("Error encoding JSON response for upload result", "error", err)
	}
}

// sendIngestError maps the ingestion error taxonomy onto HTTP statuses. All
// validation failures are user-facing 400s carrying the error text verbatim.
func (h *TransactionHandler) sendIngestError(w http.ResponseWriter, r *http.Request, err error) {
	ctxLogger := logger.FromContext(r.Context())

	var (
		parseErr  *ingest.ParseError
		schemaErr *ingest.SchemaError
		rowErr    *ingest.RowError
	)
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFormat),
		errors.As(err, &parseErr),
		errors.As(err, &schemaErr),
		errors.As(err, &rowErr):
		ctxLogger.Warn("Statement upload rejected", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		ctxLogger.Error("Statement ingestion failed", "error", err)
		utils.SendJSONError(w, "failed to ingest statement file", http.StatusInternalServerError)
	}
}

// HandleListTransactions returns a page of transactions in insertion order.
// Query parameters: skip (default 0) and limit (default 100).
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	skip := utils.QueryInt(r, "skip", defaultListSkip)
	limit := utils.QueryInt(r, "limit", defaultListLimit)

	cacheKey := fmt.Sprintf("transactions:skip=%d:limit=%d", skip, limit)
	if h.listCache != nil {
		if cached, found := h.listCache.Get(cacheKey); found {
			ctxLogger.Debug("Serving transaction list from cache", "key", cacheKey)
			writeJSON(w, ctxLogger, cached)
			return
		}
	}

	transactions, err := h.store.List(r.Context(), skip, limit)
	if err != nil {
		ctxLogger.Error("Error querying transactions", "skip", skip, "limit", limit, "error", err)
		utils.SendJSONError(w, "failed to list transactions", http.StatusInternalServerError)
		return
	}

	if h.listCache != nil {
		h.listCache.Set(cacheKey, transactions, cache.DefaultExpiration)
	}
	writeJSON(w, ctxLogger, transactions)
}

// HandleGetTransaction returns a single transaction by ID, or 404.
func (h *TransactionHandler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	idStr := chi.URLParam(r, "transactionID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid transaction id '%s'", idStr), http.StatusBadRequest)
		return
	}

	transaction, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.SendJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		ctxLogger.Error("Error querying transaction", "id", id, "error", err)
		utils.SendJSONError(w, "failed to get transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, ctxLogger, transaction)
}

func writeJSON(w http.ResponseWriter, ctxLogger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxLogger.Error("Error encoding JSON response", "error", err)
	}
}
