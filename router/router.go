package router

import (
	"poke-splendor/controller"
	"poke-splendor/middleware"
	"poke-splendor/ws"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	r.POST("/auth/token", controller.IssueToken)

	room := r.Group("/room")
	{
		room.POST("/create", controller.CreateRoom)
		room.GET("/list", controller.GetRoomList)
		room.POST("/delete", controller.DeleteRoom)
		room.GET("/:roomID", controller.GetRoomInfo)
	}

	// 存读档和状态导出需要登录
	game := r.Group("/game", middleware.AuthMiddleware())
	{
		game.GET("/:roomID/state", controller.GetGameState)
		game.POST("/:roomID/save", controller.SaveGame)
		game.POST("/:roomID/load", controller.LoadGame)
	}

	// WebSocket 路由
	r.GET("/ws", ws.HandleWebSocket)
}
