package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"brew-commerce/models"
	"brew-commerce/store"
)

// ProductController serves the public catalog and the admin catalog CRUD.
type ProductController struct {
	Products *store.ProductStore
}

func NewProductController(products *store.ProductStore) *ProductController {
	return &ProductController{Products: products}
}

// ListProducts returns available products, optionally filtered by query
// parameters.
func (pc *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ProductFilter{
		Category:      q.Get("category"),
		Featured:      q.Get("featured") == "true",
		DisplayOnGift: q.Get("gift") == "true",
		DisplayOnMenu: q.Get("menu") == "true",
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := pc.Products.List(ctx, filter)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetProduct returns one product by id.
func (pc *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	product, err := pc.Products.FindByID(ctx, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// AdminListProducts returns every product including unavailable ones.
func (pc *ProductController) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := pc.Products.ListAll(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// CreateProduct adds a catalog entry.
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if product.Name == "" || product.Price <= 0 {
		writeMessage(w, http.StatusBadRequest, "Name and a positive price are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := pc.Products.Insert(ctx, &product); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "product": product})
}

// UpdateProduct replaces the mutable fields of a product.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		Price         *float64 `json:"price"`
		Image         *string  `json:"image"`
		Category      *string  `json:"category"`
		IsAvailable   *bool    `json:"isAvailable"`
		Featured      *bool    `json:"featured"`
		DisplayOnGift *bool    `json:"displayOnGift"`
		DisplayOnMenu *bool    `json:"displayOnMenu"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.IsAvailable != nil {
		fields["is_available"] = *req.IsAvailable
	}
	if req.Featured != nil {
		fields["featured"] = *req.Featured
	}
	if req.DisplayOnGift != nil {
		fields["display_on_gift"] = *req.DisplayOnGift
	}
	if req.DisplayOnMenu != nil {
		fields["display_on_menu"] = *req.DisplayOnMenu
	}
	if len(fields) == 0 {
		writeMessage(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	product, err := pc.Products.Update(ctx, mux.Vars(r)["id"], fields)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "product": product})
}

// ToggleProductFlag flips one of the product's display flags: availability,
// gift, or menu.
func (pc *ProductController) ToggleProductFlag(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var field string
	switch vars["flag"] {
	case "availability":
		field = "is_available"
	case "gift":
		field = "display_on_gift"
	case "menu":
		field = "display_on_menu"
	default:
		writeMessage(w, http.StatusBadRequest, "Unknown flag")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	product, err := pc.Products.FindByID(ctx, vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	current := map[string]bool{
		"is_available":    product.IsAvailable,
		"display_on_gift": product.DisplayOnGift,
		"display_on_menu": product.DisplayOnMenu,
	}[field]

	updated, err := pc.Products.Update(ctx, vars["id"], bson.M{field: !current})
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "product": updated})
}

// DeleteProduct removes a catalog entry.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := pc.Products.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Product deleted"})
}
