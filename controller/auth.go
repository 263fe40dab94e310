package controller

import (
	"net/http"

	"poke-splendor/dto"
	"poke-splendor/utils"

	"github.com/gin-gonic/gin"
)

func IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "msg": "缺少必要字段"})
		return
	}
	token, err := utils.GenerateAccessToken(req.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "签发成功", dto.TokenResponse{AccessToken: token})
}
