package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"brew-commerce/config"
	"brew-commerce/controllers"
	"brew-commerce/payment"
	"brew-commerce/routes"
	"brew-commerce/services"
	"brew-commerce/store"
	"brew-commerce/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	utils.JwtKey = []byte(cfg.JWTSecret)

	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer client.Disconnect(ctx)
	logger.Info("connected to mongodb", zap.String("db", cfg.MongoDB))

	stores := store.New(client, cfg.MongoDB)
	if err := stores.OTPs.EnsureIndexes(ctx); err != nil {
		logger.Warn("otp ttl index setup failed", zap.Error(err))
	}

	email := utils.NewEmailService(cfg.SendgridAPIKey, cfg.EmailFromName, cfg.EmailFrom, cfg.StoreName)
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.Currency)

	ids := services.NewOrderIDGenerator(stores.Orders)
	cartSvc := services.NewCartService(stores.Carts)
	wishlistSvc := services.NewWishlistService(stores.Wishlists, stores.Carts)
	checkoutSvc := services.NewCheckoutService(stores.Users, stores.Carts, stores.Orders, ids, email, logger)
	adminSvc := services.NewAdminService(stores.Orders, stores.Users)

	router := routes.New(routes.Controllers{
		User:     controllers.NewUserController(stores.Users, stores.OTPs, email, logger),
		Cart:     controllers.NewCartController(cartSvc),
		Wishlist: controllers.NewWishlistController(wishlistSvc),
		Order:    controllers.NewOrderController(checkoutSvc, adminSvc),
		Payment:  controllers.NewPaymentController(gateway, cartSvc, cfg.UPIPayeeVPA, cfg.UPIPayeeName, cfg.Currency, cfg.PaymentWindow),
		Product:  controllers.NewProductController(stores.Products),
		Admin:    controllers.NewAdminController(adminSvc, email, logger, cfg.AdminUsername, cfg.AdminPassword),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
