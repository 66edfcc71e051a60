package routes

import (
	"github.com/Adarsh-512/ShopSphere/controllers"
	"github.com/Adarsh-512/ShopSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			// User management
			admin.GET("/users", controllers.AdminListUsers)
			admin.PATCH("/users/:id/block", controllers.BlockUser)
			admin.PATCH("/users/:id/unblock", controllers.UnblockUser)

			// Category management
			admin.POST("/categories", controllers.CreateCategory)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)
			admin.PATCH("/categories/:id/block", controllers.BlockCategory)
			admin.PATCH("/categories/:id/unblock", controllers.UnblockCategory)

			// Supplier management
			admin.POST("/suppliers", controllers.CreateSupplier)
			admin.GET("/suppliers", controllers.GetSuppliers)
			admin.PUT("/suppliers/:id", controllers.UpdateSupplier)
			admin.PATCH("/suppliers/:id/deactivate", controllers.DeactivateSupplier)

			// Product management
			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.PATCH("/products/:id/block", controllers.BlockProduct)
			admin.PATCH("/products/:id/unblock", controllers.UnblockProduct)

			// Review moderation
			admin.PATCH("/reviews/:id/approve", controllers.ApproveReview)
			admin.DELETE("/reviews/:id", controllers.DeleteReview)

			// Promotion management
			admin.POST("/promotions", controllers.CreatePromotion)
			admin.GET("/promotions", controllers.GetPromotions)
			admin.PUT("/promotions/:id", controllers.UpdatePromotion)
			admin.DELETE("/promotions/:id", controllers.DeletePromotion)

			// Inventory management
			admin.POST("/inventory", controllers.InitializeInventory)
			admin.GET("/inventory", controllers.ListInventory)
			admin.POST("/inventory/:id/adjust", controllers.AdjustInventory)
			admin.PUT("/inventory/:id/levels", controllers.UpdateStockLevels)
			admin.GET("/inventory/:id/movements", controllers.GetStockMovements)

			// Order management
			admin.GET("/orders", controllers.AdminListOrders)
			admin.GET("/orders/:id", controllers.AdminGetOrderDetails)
			admin.PATCH("/orders/:id/approve", controllers.ApproveOrder)
			admin.PATCH("/orders/:id/reject", controllers.RejectOrder)
			admin.PATCH("/orders/:id/advance", controllers.AdvanceOrderProcessing)
			admin.PATCH("/orders/:id/cancel", controllers.AdminCancelOrder)

			// Refund workflow
			admin.GET("/refunds", controllers.AdminListRefunds)
			admin.PATCH("/refunds/:id/approve", controllers.ApproveRefund)
			admin.PATCH("/refunds/:id/reject", controllers.RejectRefund)
			admin.PATCH("/refunds/:id/process", controllers.ProcessRefund)
			admin.PATCH("/refunds/:id/complete", controllers.CompleteRefund)

			// Reports
			admin.GET("/reports/sales", controllers.GenerateSalesReport)
			admin.GET("/reports/sales/excel", controllers.DownloadSalesReportExcel)
			admin.GET("/reports/sales/pdf", controllers.DownloadSalesReportPDF)
		}
	}
}
