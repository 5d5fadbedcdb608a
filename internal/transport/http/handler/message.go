package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/app"
	"microblog/internal/model"
)

type MessageHandler struct {
	messages *app.MessageService
}

func NewMessageHandler(messages *app.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Create responds 200 with the persisted message (id included) or 400
// when the text or the author reference declines it.
func (h *MessageHandler) Create(c *gin.Context) {
	var candidate model.Message
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created := h.messages.Create(c.Request.Context(), candidate)
	if created == nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *MessageHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.messages.ListAll())
}

// Get always responds 200; the body is empty when no such message
// exists, deliberately not a 404.
func (h *MessageHandler) Get(c *gin.Context) {
	messageID, ok := pathID(c, "message_id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	message := h.messages.Get(messageID)
	if message == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, message)
}

// Delete always responds 200; the body carries the removed message, or
// stays empty when nothing was deleted.
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, ok := pathID(c, "message_id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	deleted := h.messages.Delete(c.Request.Context(), messageID)
	if deleted == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// Update responds 200 with the merged message or 400 when the target
// is missing or the replacement text is invalid.
func (h *MessageHandler) Update(c *gin.Context) {
	messageID, ok := pathID(c, "message_id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var patch model.Message
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated := h.messages.Update(c.Request.Context(), messageID, patch)
	if updated == nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MessageHandler) ListByAuthor(c *gin.Context) {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, h.messages.ListByAuthor(c.Request.Context(), accountID))
}
