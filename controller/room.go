package controller

import (
	"net/http"

	"poke-splendor/dto"
	"poke-splendor/service"

	"github.com/gin-gonic/gin"
)

func CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "msg": "缺少必要字段"})
		return
	}

	roomID, err := service.CreateRoom(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "房间创建成功", dto.CreateRoomResponse{RoomID: roomID})
}

func DeleteRoom(c *gin.Context) {
	var req dto.DeleteRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "msg": "缺少必要字段"})
		return
	}
	if err := service.DeleteRoom(req); err != nil {
		fail(c, err)
		return
	}
	ok(c, "房间删除成功", nil)
}

func GetRoomList(c *gin.Context) {
	rooms, err := service.GetRoomList()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "获取成功", dto.GetRoomList{Rooms: rooms, Online: service.GetOnlinePlayer()})
}

func GetRoomInfo(c *gin.Context) {
	room, err := service.GetRoomInfo(c.Param("roomID"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "获取成功", room)
}
