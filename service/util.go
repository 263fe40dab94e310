package service

import (
	"strings"

	"github.com/google/uuid"
)

// NewRoomID 8 位房间号
func NewRoomID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
