package controller

import (
	"poke-splendor/service"

	"github.com/gin-gonic/gin"
)

func GetGameState(c *gin.Context) {
	state, err := service.ExportState(c.Param("roomID"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "获取成功", state)
}

func SaveGame(c *gin.Context) {
	if err := service.SaveGame(c.Param("roomID")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "存档成功", nil)
}

func LoadGame(c *gin.Context) {
	if err := service.LoadGame(c.Param("roomID")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "读档成功", nil)
}
