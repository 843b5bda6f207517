package service

import (
	"context"
	"fmt"

	"snscard-backend/internal/config"
	"snscard-backend/internal/fetch"
	"snscard-backend/internal/model"
	"snscard-backend/internal/render"
	"snscard-backend/pkg/logger"

	"github.com/google/uuid"
)

// ImageFetcher 底图获取入口，生产环境用 fetch.Chain
type ImageFetcher interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}

type CardService struct {
	cfg     *config.Config
	fetcher ImageFetcher
	layout  render.Layout
}

func NewCardService(cfg *config.Config, fetcher ImageFetcher) *CardService {
	return &CardService{
		cfg:     cfg,
		fetcher: fetcher,
		layout:  render.DefaultLayout,
	}
}

// Render 单次请求的完整渲染流水线：校验 -> 拉图 -> 排版 -> 组装
// 任意一步失败都向上返回错误，由 handler 统一跳转兜底错误图
func (s *CardService) Render(ctx context.Context, req *model.RenderRequest, device model.DeviceClass) (string, error) {
	reqID := uuid.NewString()[:8]
	fields := logger.WithFields(map[string]interface{}{
		"request_id": reqID,
		"image_id":   req.ID,
		"device":     device,
	})

	// 缺参是终态校验失败，不进入拉图
	if req.ID == "" {
		fields.Warn("缺少 id 参数")
		return "", fmt.Errorf("%w: id", model.ErrValidation)
	}
	if req.Title == "" {
		fields.Warn("缺少 title 参数")
		return "", fmt.Errorf("%w: title", model.ErrValidation)
	}

	image, err := s.fetcher.Fetch(ctx, req.ID)
	if err != nil {
		fields.Warnf("底图获取失败: %v", err)
		return "", err
	}

	svg, err := s.compose(fetch.DataURI(image), req, device)
	if err != nil {
		fields.Errorf("SVG 组装失败: %v", err)
		return "", err
	}

	fields.Debugf("渲染完成，输出 %d 字节", len(svg))
	return svg, nil
}

// compose 把组装过程中的任何 panic 收敛成 CompositionError，不让平台层裸错误漏出去
func (s *CardService) compose(dataURI string, req *model.RenderRequest, device model.DeviceClass) (svg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", model.ErrComposition, r)
		}
	}()

	res := s.layout.Calculate(req.Title, device)

	date := render.EscapeMarkup(render.NormalizeSeparators(req.Date))
	counters := render.Counters{
		Like:    counterText(req.Like),
		Comment: counterText(req.Comment),
		Repost:  counterText(req.Repost),
		Share:   counterText(req.Share),
	}

	return s.layout.Compose(dataURI, res, date, counters), nil
}

// counterText 计数缺省为 "0"，照样过一遍转义
func counterText(v string) string {
	if v == "" {
		v = "0"
	}
	return render.EscapeMarkup(v)
}
