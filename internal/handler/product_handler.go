package handler

import (
	"encoding/json"
	"net/http"

	"finderid-api/internal/domain"

	"github.com/gorilla/mux"
)

type createProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

// ProductHandler serves a card's product listings.
type ProductHandler struct {
	products domain.ProductService
	logger   domain.Logger
}

func NewProductHandler(products domain.ProductService, logger domain.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	user, token, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	cardID, err := parseID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.products.ListActiveProducts(r.Context(), user.ID, cardID, token)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user, token, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	cardID, err := parseID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product := &domain.Product{
		CardID:      cardID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	created, err := h.products.CreateProduct(r.Context(), user.ID, product, token)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeactivateProduct handles DELETE; listings are deactivated rather than removed.
func (h *ProductHandler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	user, token, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	cardID, err := parseID(vars, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	productID, err := parseID(vars, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.products.DeactivateProduct(r.Context(), user.ID, cardID, productID, token); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
