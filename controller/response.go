package controller

import (
	"errors"
	"net/http"

	"poke-splendor/rules"
	"poke-splendor/service"
	"poke-splendor/ws"

	"github.com/gin-gonic/gin"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, ws.ErrRoomNotFound), errors.Is(err, ws.ErrNoGameState), errors.Is(err, ws.ErrNoSnapshot):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTooManyAI), errors.Is(err, rules.ErrInvalidState):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	code := statusOf(err)
	c.JSON(code, gin.H{"status_code": code, "msg": err.Error()})
}

func ok(c *gin.Context, msg string, data interface{}) {
	body := gin.H{"status_code": http.StatusOK, "msg": msg}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}
