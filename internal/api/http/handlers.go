package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/techstore/admin-manager/internal/apisrv/admin"
	"github.com/techstore/admin-manager/internal/apisrv/auth"
	"github.com/techstore/admin-manager/internal/dto"
	"github.com/techstore/admin-manager/internal/entity"
	"github.com/techstore/admin-manager/internal/ratelimit"
	"github.com/techstore/admin-manager/internal/store"
)

type handlers struct {
	admin  *admin.Server
	auth   *auth.Server
	limits *ratelimit.OrderLimiter
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondServiceError maps service errors onto http statuses. Anything not
// recognized is a 500 with a generic message; details stay in the server log.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrOrderNotFound),
		errors.Is(err, store.ErrDriverNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "failed to fetch data")
	}
}

func pathId(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// STATS

func (h *handlers) getStats(w http.ResponseWriter, r *http.Request) {
	counters, err := h.admin.Counters(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counters)
}

func (h *handlers) getCategoryStats(w http.ResponseWriter, r *http.Request) {
	stock, err := h.admin.CategoryStock(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stock)
}

func (h *handlers) getMonthlySales(w http.ResponseWriter, r *http.Request) {
	month, err := time.Parse("2006-01", chi.URLParam(r, "month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("bad month %q, want YYYY-MM", chi.URLParam(r, "month")))
		return
	}
	series, err := h.admin.MonthlySales(r.Context(), month.Year(), month.Month())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

// AUTH

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}

type createAdminRequest struct {
	MasterPassword string `json:"masterPassword"`
	Username       string `json:"username"`
	Password       string `json:"password"`
}

func (h *handlers) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	token, err := h.auth.Create(r.Context(), req.MasterPassword, req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}

type deleteAdminRequest struct {
	MasterPassword string `json:"masterPassword"`
	Username       string `json:"username"`
}

func (h *handlers) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	var req deleteAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if err := h.auth.Delete(r.Context(), req.MasterPassword, req.Username); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}

type changePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *handlers) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	token, err := h.auth.ChangePassword(r.Context(), req.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}

// IMAGES

type uploadImageRequest struct {
	RawB64Image string `json:"rawB64Image"`
}

type uploadImageResponse struct {
	URL string `json:"url"`
}

func (h *handlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	var req uploadImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	url, err := h.admin.UploadProductImage(r.Context(), req.RawB64Image)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, uploadImageResponse{URL: url})
}

// PRODUCTS

func (h *handlers) addProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	resp, err := h.admin.AddProduct(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := &entity.ProductFilter{
		Category:   entity.CategoryEnum(r.URL.Query().Get("category")),
		NamePrefix: r.URL.Query().Get("name"),
		Featured:   r.URL.Query().Get("featured") == "true",
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			respondError(w, http.StatusBadRequest, "bad limit")
			return
		}
		filter.Limit = n
	}
	resp, err := h.admin.ListProducts(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad product id")
		return
	}
	resp, err := h.admin.GetProduct(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad product id")
		return
	}
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	resp, err := h.admin.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

type setFeaturedRequest struct {
	Featured bool `json:"isFeatured"`
}

func (h *handlers) setProductFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad product id")
		return
	}
	var req setFeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if err := h.admin.SetProductFeatured(r.Context(), id, req.Featured); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}

func (h *handlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad product id")
		return
	}
	if err := h.admin.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}

// ORDERS

func (h *handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	// RemoteAddr already holds the real client IP, the RealIP middleware runs first
	if err := h.limits.CheckOrderCreation(r.RemoteAddr, req.Phone); err != nil {
		respondError(w, http.StatusTooManyRequests, err.Error())
		return
	}
	resp, err := h.admin.CreateOrder(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	status := entity.OrderStatusName(r.URL.Query().Get("status"))
	exclude := r.URL.Query().Get("exclude") == "true"
	if status == "" {
		// default view: everything that is not cancelled
		status = entity.Cancelled
		exclude = true
	}
	resp, err := h.admin.ListOrders(r.Context(), status, exclude)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad order id")
		return
	}
	resp, err := h.admin.GetOrder(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad order id")
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	status := entity.OrderStatusName(req.Status)
	if !entity.IsValidOrderStatus(status) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown order status %q", req.Status))
		return
	}
	if err := h.admin.UpdateOrderStatus(r.Context(), id, status); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}

func (h *handlers) assignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad order id")
		return
	}
	var req dto.AssignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if err := h.admin.AssignDriver(r.Context(), id, req.DriverID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}

func (h *handlers) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad order id")
		return
	}
	if err := h.admin.DeleteOrder(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}

// DRIVERS

func (h *handlers) addDriver(w http.ResponseWriter, r *http.Request) {
	var req dto.DriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	resp, err := h.admin.AddDriver(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *handlers) listDrivers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.ListDrivers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) getDriverByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "bad driver email")
		return
	}
	resp, err := h.admin.GetDriverByEmail(r.Context(), email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) getDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad driver id")
		return
	}
	resp, err := h.admin.GetDriver(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) updateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad driver id")
		return
	}
	var req dto.DriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	resp, err := h.admin.UpdateDriver(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) deleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad driver id")
		return
	}
	if err := h.admin.DeleteDriver(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct{}{})
}
