package handler

import (
	"net/http"

	"snscard-backend/internal/config"
	"snscard-backend/internal/model"
	"snscard-backend/internal/render"
	"snscard-backend/internal/service"
	"snscard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cardService *service.CardService
	cfg         *config.Config
}

func NewCardHandler(cardService *service.CardService, cfg *config.Config) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		cfg:         cfg,
	}
}

// RenderCard GET /api/card/render
// 成功返回 image/svg+xml，任何失败都 302 到固定错误图，绝不给消费方裂图
func (h *CardHandler) RenderCard(c *gin.Context) {
	var req model.RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warnf("请求参数解析失败: %v", err)
		h.redirectFallback(c)
		return
	}

	device := render.DetectDeviceClass(c.GetHeader("User-Agent"))

	svg, err := h.cardService.Render(c.Request.Context(), &req, device)
	if err != nil {
		// 错误分类只进日志，对外表现统一
		h.redirectFallback(c)
		return
	}

	c.Header("Cache-Control", h.cfg.Render.CacheControl)
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

func (h *CardHandler) redirectFallback(c *gin.Context) {
	c.Redirect(http.StatusFound, h.cfg.Render.ErrorImageURL)
}
