package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes installs the global middleware pipeline and every route.
// Middleware order matters: recovery wraps everything, and the request
// logger must see the request id.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.Use(
		h.HandleRecovery,
		h.HandleRequestID,
		h.HandleRequestLogging,
		h.HandleCORS,
		h.HandleRequestTimeout,
		h.HandleJSONBody,
	)

	router.GET("/healthz", h.HandleHealth)

	todosRouter := router.Group("/todos")
	todosRouter.POST("", h.HandleCreateTodo)
	todosRouter.GET("", h.HandleGetTodos)
	todosRouter.GET("/:id", h.HandleGetTodo)
	todosRouter.PUT("/:id", h.HandleUpdateTodo)
	todosRouter.DELETE("/:id", h.HandleDeleteTodo)
	todosRouter.PUT("/complete/:id", h.HandleCompleteTodo)

	completeRouter := router.Group("/complete")
	completeRouter.GET("", h.HandleGetCompletedTodos)
	completeRouter.DELETE("/:id", h.HandleDeleteCompletedTodo)

	router.POST("/signup", h.HandleSignup)
	router.POST("/login", h.HandleLogin)
	router.GET("/protected", h.HandleVerifyToken, h.HandleProtected)
}
