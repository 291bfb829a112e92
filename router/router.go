package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/middlewares"
	"github.com/yeremiapane/qrmenu-app/realtime"
)

func SetupRouter(db *gorm.DB, hub *realtime.Hub, menuCache *middlewares.MenuCache) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(db)
	sessionCtrl := controllers.NewSessionController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, hub)
	callCtrl := controllers.NewWaiterCallController(db, hub)
	adminCtrl := controllers.NewAdminController(db)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Endpoint WebSocket; subscribe group lewat pesan join-*
	r.GET("/ws", realtimeCtrl.Handle)

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------

	// Rate limiter ketat khusus login
	login := api.Group("/")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/auth/login", authCtrl.Login)
	}

	api.POST("/session/open", sessionCtrl.OpenSession)
	api.POST("/session/close", sessionCtrl.CloseSession)
	api.POST("/waiter-call/create", callCtrl.CreateCall)

	menu := api.Group("/menu")
	if menuCache != nil {
		menu.Use(menuCache.Cache())
	}
	{
		menu.GET("/:restaurant_id", menuCtrl.GetMenu)
		menu.GET("/:restaurant_id/categories", menuCtrl.GetCategories)
		menu.GET("/:restaurant_id/items/:category_id", menuCtrl.GetItemsByCategory)
	}

	// -- CUSTOMER (token sesi dari QR) --
	customer := api.Group("/orders")
	customer.Use(middlewares.SessionAuthMiddleware(sessionCtrl.Sessions))
	{
		customer.POST("/create", orderCtrl.CreateOrder)
		customer.GET("/table", orderCtrl.GetTableOrders)
	}

	// -- STAFF (token staff) --
	staff := api.Group("/")
	staff.Use(middlewares.AuthMiddleware(db))
	{
		staff.GET("/auth/me", authCtrl.Me)
		staff.POST("/auth/change-password", authCtrl.ChangePassword)
		staff.POST("/auth/register", middlewares.RequireRole("ADMIN"), authCtrl.Register)

		staff.GET("/orders/restaurant/:restaurant_id", orderCtrl.GetRestaurantOrders)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		staff.PATCH("/orders/items/:item_id/status", orderCtrl.UpdateOrderItemStatus)

		staff.GET("/waiter-call/restaurant/:restaurant_id", callCtrl.GetRestaurantCalls)
		staff.PATCH("/waiter-call/:call_id/status", callCtrl.UpdateCallStatus)
		staff.DELETE("/waiter-call/:call_id", callCtrl.DeleteCall)

		admin := staff.Group("/admin")
		{
			admin.GET("/restaurants", adminCtrl.GetRestaurants)
			admin.POST("/restaurants", middlewares.RequireRole("ADMIN"), adminCtrl.CreateRestaurant)
			admin.GET("/restaurants/:restaurant_id/tables", adminCtrl.GetTables)
			admin.POST("/restaurants/:restaurant_id/tables", middlewares.RequireRole("ADMIN"), adminCtrl.CreateTable)
			admin.PATCH("/tables/:table_id/status", middlewares.RequireRole("ADMIN"), adminCtrl.UpdateTableStatus)
			admin.GET("/restaurants/:restaurant_id/menu", adminCtrl.GetMenuForManagement)
			admin.POST("/restaurants/:restaurant_id/categories", middlewares.RequireRole("ADMIN"), adminCtrl.CreateCategory)
			admin.POST("/restaurants/:restaurant_id/items", middlewares.RequireRole("ADMIN"), adminCtrl.CreateMenuItem)
			admin.GET("/users", middlewares.RequireRole("ADMIN"), adminCtrl.GetUsers)
			admin.PATCH("/users/:user_id/status", middlewares.RequireRole("ADMIN"), adminCtrl.UpdateUserStatus)
		}
	}

	return r
}
