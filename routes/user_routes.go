package routes

import (
	"github.com/Adarsh-512/ShopSphere/controllers"
	"github.com/Adarsh-512/ShopSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes
	router.POST("/register", controllers.Register)
	router.POST("/verify-otp", controllers.VerifyRegistrationOTP)
	router.POST("/login", controllers.Login)

	// Public catalog
	router.GET("/products", controllers.GetProducts)
	router.GET("/products/:id", controllers.GetProductDetails)
	router.GET("/categories", controllers.GetCategories)

	// Authenticated user routes
	user := router.Group("")
	user.Use(middleware.AuthMiddleware())
	{
		// Addresses
		user.POST("/addresses", controllers.AddAddress)
		user.GET("/addresses", controllers.GetAddresses)
		user.PUT("/addresses/:id", controllers.UpdateAddress)
		user.DELETE("/addresses/:id", controllers.DeleteAddress)

		// Cart
		user.POST("/cart", controllers.AddToCart)
		user.GET("/cart", controllers.GetCart)
		user.PUT("/cart/:id", controllers.UpdateCartItem)
		user.DELETE("/cart/:id", controllers.RemoveCartItem)

		// Promotions
		user.POST("/promotions/apply", controllers.ApplyPromotion)
		user.GET("/promotions/preview", controllers.PreviewPromotion)
		user.DELETE("/promotions/active", controllers.RemovePromotion)

		// Checkout and orders
		user.POST("/checkout", controllers.Checkout)
		user.GET("/orders", controllers.GetUserOrders)
		user.GET("/orders/:id", controllers.GetOrderDetails)
		user.POST("/orders/:id/cancel", controllers.CancelOrder)
		user.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		// Payments
		user.POST("/orders/:id/payment", controllers.InitiatePayment)
		user.POST("/payments/verify", controllers.VerifyPayment)

		// Refunds
		user.POST("/refunds", controllers.CreateRefund)
		user.GET("/refunds", controllers.GetUserRefunds)
		user.GET("/refunds/:id", controllers.GetRefundDetails)

		// Wallet
		user.GET("/wallet", controllers.GetWallet)
		user.GET("/wallet/transactions", controllers.GetWalletTransactions)

		// Reviews
		user.POST("/products/:id/reviews", controllers.CreateReview)
	}
}
