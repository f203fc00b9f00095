// Package routes wires every controller onto the mux router. Authenticated
// routes share one subrouter behind the JWT middleware; admin routes add the
// admin-claim check on top.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"brew-commerce/controllers"
	"brew-commerce/middleware"
)

// Controllers bundles everything the router needs.
type Controllers struct {
	User     *controllers.UserController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
	Product  *controllers.ProductController
	Admin    *controllers.AdminController
}

// New builds the full route table.
func New(c Controllers) *mux.Router {
	r := mux.NewRouter()

	// Public
	r.HandleFunc("/register", c.User.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", c.User.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/send-otp", c.User.SendResetOTP).Methods(http.MethodPost)
	r.HandleFunc("/api/verify-otp", c.User.VerifyOTP).Methods(http.MethodPost)
	r.HandleFunc("/api/change-password", c.User.ChangePassword).Methods(http.MethodPost)
	r.HandleFunc("/api/products", c.Product.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", c.Product.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/admin/login", c.Admin.Login).Methods(http.MethodPost)

	// Authenticated
	auth := r.NewRoute().Subrouter()
	auth.Use(middleware.AuthMiddleware)

	auth.HandleFunc("/logout", c.User.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/profile", c.User.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/profile", c.User.UpdateProfile).Methods(http.MethodPut)

	auth.HandleFunc("/cart", c.Cart.GetCart).Methods(http.MethodGet)
	auth.HandleFunc("/cart", c.Cart.AddToCart).Methods(http.MethodPost)
	auth.HandleFunc("/update-quantity/{productId}", c.Cart.UpdateQuantity).Methods(http.MethodPut)
	auth.HandleFunc("/remove-from-cart/{productId}", c.Cart.RemoveFromCart).Methods(http.MethodDelete)

	auth.HandleFunc("/wishlist", c.Wishlist.GetWishlist).Methods(http.MethodGet)
	auth.HandleFunc("/wishlist/add", c.Wishlist.AddToWishlist).Methods(http.MethodPost)
	auth.HandleFunc("/wishlist/remove/{productId}", c.Wishlist.RemoveFromWishlist).Methods(http.MethodDelete)
	auth.HandleFunc("/wishlist/move-to-cart", c.Wishlist.MoveToCart).Methods(http.MethodPost)

	auth.HandleFunc("/order", c.Order.PlaceOrder).Methods(http.MethodPost)
	auth.HandleFunc("/orders", c.Order.GetOrders).Methods(http.MethodGet)
	auth.HandleFunc("/api/cancel-order/{orderId}", c.Order.CancelOrder).Methods(http.MethodPut)

	auth.HandleFunc("/api/create-razorpay-order", c.Payment.CreateGatewayOrder).Methods(http.MethodPost)
	auth.HandleFunc("/api/payment/reference", c.Payment.PaymentReference).Methods(http.MethodGet)
	auth.HandleFunc("/api/payment/qr", c.Payment.PaymentQR).Methods(http.MethodGet)

	// Admin
	admin := r.NewRoute().Subrouter()
	admin.Use(middleware.AuthMiddleware, middleware.AdminMiddleware)

	admin.HandleFunc("/admin/orders", c.Admin.ListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/admin/orders/{orderId}/status", c.Admin.UpdateOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/api/admin/stats", c.Admin.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/admin/users", c.Admin.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/api/admin/users/{id}", c.Admin.DeleteUser).Methods(http.MethodDelete)

	admin.HandleFunc("/admin/products", c.Product.AdminListProducts).Methods(http.MethodGet)
	admin.HandleFunc("/admin/products", c.Product.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/admin/products/{id}", c.Product.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/admin/products/{id}", c.Product.DeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/products/{id}/toggle/{flag}", c.Product.ToggleProductFlag).Methods(http.MethodPut)

	return r
}
