package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/erfansky/Dressmaking/internal/console/app"
	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
	"github.com/erfansky/Dressmaking/internal/console/infra/adapters/backend"
	"github.com/erfansky/Dressmaking/internal/console/session"
	"github.com/erfansky/Dressmaking/internal/coordinator/sagalog"
)

// Handler handles incoming HTTP requests from the console frontend and maps
// them onto the workflow services.
type Handler struct {
	tokens      ports.TokenService
	registry    *app.RegistryService
	catalog     *app.CatalogService
	assignment  *app.AssignmentService
	composition *app.CompositionService
	orders      *app.OrderViewService
	sagaLogRepo sagalog.Repository // nil-safe: status endpoint 404s if nil
}

func NewHandler(
	tokens ports.TokenService,
	registry *app.RegistryService,
	catalog *app.CatalogService,
	assignment *app.AssignmentService,
	composition *app.CompositionService,
	orders *app.OrderViewService,
	sagaRepo sagalog.Repository,
) *Handler {
	return &Handler{
		tokens:      tokens,
		registry:    registry,
		catalog:     catalog,
		assignment:  assignment,
		composition: composition,
		orders:      orders,
		sagaLogRepo: sagaRepo,
	}
}

// ── auth ────────────────────────────────────────────────────────────────────

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	pair, err := h.tokens.Obtain(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "")
			return
		}
		writeError(w, http.StatusBadGateway, "backend_error", err.Error())
		return
	}

	sess, _ := session.FromContext(r.Context())
	sess.SetTokens(pair)

	slog.InfoContext(r.Context(), "login succeeded", "username", req.Username)
	writeJSON(w, http.StatusOK, SessionResponse{LoggedIn: true})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		sess.Invalidate()
	}
	writeJSON(w, http.StatusOK, SessionResponse{LoggedIn: false})
}

func (h *Handler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, SessionResponse{LoggedIn: ok && sess.LoggedIn()})
}

// ── customers ───────────────────────────────────────────────────────────────

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := h.registry.List(r.Context(), listQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.registry.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.submitCustomer(w, r, 0)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.submitCustomer(w, r, id)
}

func (h *Handler) submitCustomer(w http.ResponseWriter, r *http.Request, id int64) {
	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	c, err := h.registry.Submit(r.Context(), req.toEntity(id))
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, c)
}

// DeleteCustomer requires an explicit confirm=true query parameter; the
// frontend sends it only after the user confirmed the prompt.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "confirmation_required", "pass confirm=true to delete a customer")
		return
	}
	if err := h.registry.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── products & properties ───────────────────────────────────────────────────

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.submitProduct(w, r, 0)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.submitProduct(w, r, id)
}

func (h *Handler) submitProduct(w http.ResponseWriter, r *http.Request, id int64) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := h.catalog.SubmitProduct(r.Context(), req.toEntity(id))
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListProductProperties(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	defs, err := h.catalog.ProductProperties(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	h.submitProperty(w, r, 0)
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.submitProperty(w, r, id)
}

func (h *Handler) submitProperty(w http.ResponseWriter, r *http.Request, id int64) {
	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := h.catalog.SubmitProperty(r.Context(), req.toEntity(id), req.PossibleValues)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, p)
}

func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProperty(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── property assignment ─────────────────────────────────────────────────────

func (h *Handler) GetAssignmentForm(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	form, err := h.assignment.Load(r.Context(), customerID, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *Handler) SaveAssignmentForm(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}

	var req AssignmentSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	inputs := make(map[int64]app.FieldInput, len(req.Fields))
	for key, input := range req.Fields {
		propID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "bad property id "+key)
			return
		}
		inputs[propID] = input
	}

	report, err := h.assignment.Save(r.Context(), customerID, productID, inputs)
	if err != nil {
		if report != nil {
			// Partial save: earlier upserts are persisted. Surface the
			// report so the frontend can show which fields need a retry.
			writeJSON(w, http.StatusBadGateway, report)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ── order composition ───────────────────────────────────────────────────────

func (h *Handler) SeedOrderItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := queryID(w, r, "customer")
	if !ok {
		return
	}
	productID, ok := queryID(w, r, "product")
	if !ok {
		return
	}
	seed, err := h.composition.SeedItem(r.Context(), customerID, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var draft app.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	result, err := h.composition.Save(r.Context(), draft)
	if err != nil {
		if result != nil && result.OrderID != 0 {
			// The order record exists; only some items were created. The
			// result carries both the order id and the step report.
			writeJSON(w, http.StatusBadGateway, result)
			return
		}
		writeSubmitError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ── orders ──────────────────────────────────────────────────────────────────

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := h.orders.List(r.Context(), listQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.orders.Detail(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req OrderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	order, err := h.orders.Update(r.Context(), id, req.Price, req.Payed, req.Status)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ── saga status ─────────────────────────────────────────────────────────────

// GetSagaStatus returns the latest audit row of a saga so a partial save
// can be inspected after the fact.
func (h *Handler) GetSagaStatus(w http.ResponseWriter, r *http.Request) {
	sagaID := chi.URLParam(r, "id")
	if sagaID == "" || h.sagaLogRepo == nil {
		writeError(w, http.StatusNotFound, "saga_not_found", "")
		return
	}
	entry, err := h.sagaLogRepo.GetLatest(r.Context(), sagaID)
	if err != nil {
		writeError(w, http.StatusNotFound, "saga_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SagaStatusResponse{
		SagaID:      entry.SagaID,
		Status:      string(entry.Status),
		CurrentStep: entry.CurrentStep,
		Errors:      entry.ErrorMessages,
		UpdatedAt:   entry.UpdatedAt.Format(time.RFC3339),
		TraceID:     entry.TraceID,
	})
}

// ── helpers ─────────────────────────────────────────────────────────────────

func listQuery(r *http.Request) entity.ListQuery {
	q := r.URL.Query()
	return entity.ListQuery{
		Search: q.Get("search"),
		Cursor: q.Get("cursor"),
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeServiceError maps read-path failures: session loss and missing
// records have dedicated statuses, anything else is a backend problem.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "session_expired", "")
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "")
	default:
		slog.ErrorContext(r.Context(), "backend call failed", "error", err)
		writeError(w, http.StatusBadGateway, "backend_error", err.Error())
	}
}

// writeSubmitError is writeServiceError for mutation paths, where an error
// that is neither a sentinel nor a backend rejection is a validation
// failure of the submitted data.
func writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, ports.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "session_expired", "")
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "")
	case errors.As(err, &apiErr):
		slog.ErrorContext(r.Context(), "backend rejected request", "status", apiErr.StatusCode, "error", err)
		writeError(w, http.StatusBadGateway, "backend_error", err.Error())
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
