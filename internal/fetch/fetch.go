package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"snscard-backend/internal/config"
	"snscard-backend/internal/model"
	"snscard-backend/pkg/logger"
)

// ImageSource 上游底图的一种获取途径
// 传输错误、非 2xx、空响应体对调用方来说都是同一种失败，不再细分
type ImageSource interface {
	Name() string
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// OriginSource 直连图源，带上兼容性伪装头（非鉴权手段，缺了也不算硬错误）
type OriginSource struct {
	baseURL   string
	userAgent string
	referer   string
	accept    string
	client    *http.Client
}

func (s *OriginSource) Name() string {
	return "origin"
}

func (s *OriginSource) Fetch(ctx context.Context, id string) ([]byte, error) {
	return doFetch(ctx, s.client, s.imageURL(id), s.userAgent, s.referer, s.accept)
}

func (s *OriginSource) imageURL(id string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + url.PathEscape(id)
}

// RelaySource 经中转服务拉取同一张图，用于图源疑似封禁本服务出口时的单次回退
type RelaySource struct {
	relayURL string
	origin   *OriginSource
	client   *http.Client
}

func (s *RelaySource) Name() string {
	return "relay"
}

func (s *RelaySource) Fetch(ctx context.Context, id string) ([]byte, error) {
	u := s.relayURL + "?url=" + url.QueryEscape(s.origin.imageURL(id))
	return doFetch(ctx, s.client, u, "", "", "")
}

func doFetch(ctx context.Context, client *http.Client, u, userAgent, referer, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	return body, nil
}

// Chain 按顺序尝试各途径，最多一次回退，全部失败时整体算一次拉取失败
type Chain struct {
	sources []ImageSource
}

func NewChain(cfg *config.UpstreamConfig) *Chain {
	client := newHTTPClient(cfg.Timeout)

	origin := &OriginSource{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		referer:   cfg.Referer,
		accept:    cfg.Accept,
		client:    client,
	}

	sources := []ImageSource{origin}
	if cfg.RelayURL != "" {
		sources = append(sources, &RelaySource{
			relayURL: cfg.RelayURL,
			origin:   origin,
			client:   client,
		})
	}

	return &Chain{sources: sources}
}

func (c *Chain) Fetch(ctx context.Context, id string) ([]byte, error) {
	for _, src := range c.sources {
		body, err := src.Fetch(ctx, id)
		if err != nil {
			logger.Warnf("图源 %s 拉取失败 (id=%s): %v", src.Name(), id, err)
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("%w: all sources exhausted", model.ErrUpstreamFetch)
}

// DataURI 把底图字节内联成 base64 数据地址，内容类型按约定当作 PNG
func DataURI(image []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)
}
