package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dermacare/internal/models"
	"dermacare/internal/services"
)

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// @Summary      Chat with the skin-health advisor
// @Description  LLM-backed reply with a deterministic rule-based fallback; replies are safety-filtered
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      models.ChatRequest  true  "Message plus optional scan context"
// @Success      200      {object}  models.ChatResponse
// @Failure      400      {object}  map[string]string
// @Router       /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.chat.Reply(&req))
}
