package fetch

import (
	"crypto/tls"
	"net/http"
	"time"
)

// newHTTPClient 上游拉图专用客户端，超时由配置给定，超时按普通拉取失败处理
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
