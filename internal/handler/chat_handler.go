package handler

import (
	"github.com/labstack/echo/v4"

	"mfchat/internal/auth"
	apperrors "mfchat/internal/errors"
	"mfchat/internal/service"
)

// ChatHandler handles the chat-context endpoints.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatContextData is one list entry of get-chat-contexts.
type ChatContextData struct {
	ContextID string `json:"contextId"`
	ChatTitle string `json:"chatTitle"`
}

// ChangeTitleRequest renames a chat context.
type ChangeTitleRequest struct {
	ContextID string `json:"contextId" validate:"required"`
	NewTitle  string `json:"newTitle" validate:"required,max=255"`
}

// DeleteChatContextRequest deletes a single chat context.
type DeleteChatContextRequest struct {
	ContextID string `json:"contextId" validate:"required"`
}

// GetChatContexts godoc
// @Summary List the user's chat contexts
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response{data=[]ChatContextData}
// @Failure 401 {object} errors.Response
// @Router /api/user/get-chat-contexts [get]
func (h *ChatHandler) GetChatContexts(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	contexts, err := h.chatService.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	data := make([]ChatContextData, 0, len(contexts))
	for _, ctx := range contexts {
		data = append(data, ChatContextData{ContextID: ctx.ContextID, ChatTitle: ctx.ChatTitle})
	}
	return respondOK(c, "chat contexts fetched", data)
}

// ChangeTitleChat godoc
// @Summary Rename a chat context
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangeTitleRequest true "New title"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /api/user/change-title-chat [post]
func (h *ChatHandler) ChangeTitleChat(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	var req ChangeTitleRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := h.chatService.Rename(c.Request().Context(), userID, req.ContextID, req.NewTitle); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "chat title updated", nil)
}

// DeleteOneChatContext godoc
// @Summary Delete a single chat context
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteChatContextRequest true "Context id"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /api/user/delete-one-chat-context [post]
func (h *ChatHandler) DeleteOneChatContext(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	var req DeleteChatContextRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := h.chatService.DeleteOne(c.Request().Context(), userID, req.ContextID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "chat context deleted", nil)
}

// DeleteUserChats godoc
// @Summary Delete all chat contexts of the user
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /api/user/delete-user-chats [post]
func (h *ChatHandler) DeleteUserChats(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.chatService.DeleteAll(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "chat contexts deleted", nil)
}
