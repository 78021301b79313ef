package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"foodiegv/catalog"
	"foodiegv/domain"
	"foodiegv/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Restaurants service.CatalogServiceInterface
	Reviews     service.ReviewServiceInterface
	QR          service.QRGenerator
	Limiter     *RateLimiter
	Logger      *log.Logger
}

func NewHandler(restaurants service.CatalogServiceInterface, reviews service.ReviewServiceInterface, qr service.QRGenerator, limiter *RateLimiter, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		Restaurants: restaurants,
		Reviews:     reviews,
		QR:          qr,
		Limiter:     limiter,
		Logger:      logger,
	}
}

// RegisterRoutes mounts the catalog both at the root and under /api.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	h.registerCatalogRoutes(r.PathPrefix("/api").Subrouter())
	h.registerCatalogRoutes(r)
}

func (h *Handler) registerCatalogRoutes(r *mux.Router) {
	r.HandleFunc("/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/restaurants/{id}/reviews", h.getReviews).Methods("GET")
	r.Handle("/restaurants/{id}/reviews", h.Limiter.Limit(http.HandlerFunc(h.createReview))).Methods("POST")
	r.HandleFunc("/restaurants/{id}/qrcode", h.getQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	criteria, err := catalog.ParseQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	restaurants, err := h.Restaurants.List(r.Context(), criteria)
	if err != nil {
		h.Logger.Printf("Error listing restaurants: %v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch restaurants")
		return
	}
	h.writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, ok := h.lookupRestaurant(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) lookupRestaurant(w http.ResponseWriter, r *http.Request) (*domain.Restaurant, bool) {
	id := mux.Vars(r)["id"]
	restaurant, err := h.Restaurants.Get(r.Context(), id)
	switch {
	case err == nil:
		return restaurant, true
	case errors.Is(err, service.ErrRestaurantNotFound):
		h.writeError(w, http.StatusNotFound, "Restaurant not found")
	default:
		h.Logger.Printf("Error loading restaurant %s: %v", id, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch restaurant")
	}
	return nil, false
}

func (h *Handler) getReviews(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	reviews, err := h.Reviews.List(r.Context(), id)
	if err != nil {
		h.Logger.Printf("Error listing reviews for %s: %v", id, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	h.writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input domain.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	review, err := h.Reviews.Create(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReview):
			h.writeError(w, http.StatusBadRequest, "Invalid review data")
		default:
			h.Logger.Printf("Error creating review for %s: %v", id, err)
			h.writeError(w, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}

	h.Logger.Printf("Accepted review %s for restaurant %s", review.ID, id)
	h.writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	restaurant, ok := h.lookupRestaurant(w, r)
	if !ok {
		return
	}

	png, err := h.QR.Generate(restaurant.ID)
	if err != nil {
		h.Logger.Printf("Error generating QR code for %s: %v", restaurant.ID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
