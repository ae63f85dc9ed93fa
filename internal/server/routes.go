package server

import "github.com/gin-gonic/gin"

// registerRoutes sets up all bridge routes on the gin router.
func registerRoutes(router *gin.Engine, opts Opts) {
	router.POST("/message/send", handleSendMessage(opts))
	router.GET("/messages", handleGetMessages(opts))
	router.POST("/message/echo", handleEcho(opts))

	// Slack calls /auth with GET in practice; POST is accepted for parity
	// with the app manifest.
	router.GET("/auth", handleAuthorize(opts))
	router.POST("/auth", handleAuthorize(opts))

	router.POST("/slack/event", handleSlackEvent(opts))
}
