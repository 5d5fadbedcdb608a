package http

import (
	"github.com/gin-gonic/gin"

	appsvc "microblog/internal/app"
	"microblog/internal/bootstrap"
	"microblog/internal/repository"
	"microblog/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	accountRepo := repository.NewAccountRepository(app.MySQL, app.Log)
	messageRepo := repository.NewMessageRepository(app.MySQL, app.Log)

	accountService := appsvc.NewAccountService(accountRepo)
	messageService := appsvc.NewMessageService(messageRepo, app.Timeline, app.Events, app.Log)

	accountHandler := handler.NewAccountHandler(accountService, app.Timeline)
	messageHandler := handler.NewMessageHandler(messageService)

	v1 := router.Group("/api/v1")
	v1.POST("/register", accountHandler.Register)
	v1.POST("/login", accountHandler.Login)
	v1.GET("/accounts", accountHandler.List)
	v1.GET("/accounts/:account_id/messages", messageHandler.ListByAuthor)
	v1.GET("/accounts/:account_id/stats", accountHandler.Stats)

	v1.POST("/messages", messageHandler.Create)
	v1.GET("/messages", messageHandler.List)
	v1.GET("/messages/:message_id", messageHandler.Get)
	v1.DELETE("/messages/:message_id", messageHandler.Delete)
	v1.PATCH("/messages/:message_id", messageHandler.Update)

	return router
}
