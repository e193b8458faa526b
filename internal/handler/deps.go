package handler

import (
	"linechat/internal/app/chat"
	"linechat/internal/configs"
)

// AppDeps bundles the shared state the admin API and WebSocket gateway operate on.
type AppDeps struct {
	Config    *configs.AppConfig
	Conns     *chat.ConnectionRegistry
	Users     *chat.UserRegistry
	Rooms     *chat.ChatroomRegistry
	Lifecycle *chat.Lifecycle
	Processor *chat.CommandProcessor
}
