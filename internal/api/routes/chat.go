package routes

import (
	"coffee-chat-backend/internal/handlers"
	"coffee-chat-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerChats(r fiber.Router, db *gorm.DB) {
	// Initialize handler
	chatRepo := repo.NewChatRepository(db)
	chatHandler := handlers.NewChatHandler(chatRepo)

	// Register routes
	r.Get("/chats", chatHandler.ListChats)
	r.Post("/chats", chatHandler.CreateChat)
	r.Get("/chats/:id", chatHandler.GetChat)
	r.Put("/chats/:id", chatHandler.UpdateChat)
	r.Patch("/chats/:id", chatHandler.UpdateChat)
	r.Delete("/chats/:id", chatHandler.DeleteChat)
}
