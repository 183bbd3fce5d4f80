package handlers

import (
	"strconv"

	"coffee-chat-backend/internal/dto"
	"coffee-chat-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

// for simple crud operations service layer is not required
type ChatHandler struct {
	chatRepo repo.ChatRepoInterface
}

func NewChatHandler(chatRepo repo.ChatRepoInterface) *ChatHandler {
	return &ChatHandler{chatRepo: chatRepo}
}

// list every chat
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	chats, err := h.chatRepo.ListChats(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewChatListResponse(chats))
}

func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return err
	}

	chat, err := h.chatRepo.GetChatByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewChatResponse(chat))
}

func (h *ChatHandler) CreateChat(c *fiber.Ctx) error {
	input, err := dto.ParseChatInput(c.Body(), false)
	if err != nil {
		return err
	}

	chat := input.ToModel()
	if err := h.chatRepo.CreateChat(c.UserContext(), chat); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewChatResponse(chat))
}

// PUT replaces every field, PATCH only the ones sent
func (h *ChatHandler) UpdateChat(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return err
	}

	// unknown ids are reported before payload problems
	if _, err := h.chatRepo.GetChatByID(c.UserContext(), id); err != nil {
		return err
	}

	partial := c.Method() == fiber.MethodPatch
	input, err := dto.ParseChatInput(c.Body(), partial)
	if err != nil {
		return err
	}

	chat, err := h.chatRepo.UpdateChat(c.UserContext(), id, input.ToChanges())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewChatResponse(chat))
}

func (h *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return err
	}

	if err := h.chatRepo.DeleteChat(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// chatID reads the :id param. Anything that is not a positive integer can
// never match a stored chat.
func chatID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, repo.ErrChatNotFound
	}
	return uint(id), nil
}
