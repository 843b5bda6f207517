package model

import "errors"

// 三类错误对外表现一致（302 跳转到兜底错误图），区别只体现在日志里
var (
	ErrValidation    = errors.New("required parameter missing")
	ErrUpstreamFetch = errors.New("upstream image fetch failed")
	ErrComposition   = errors.New("svg composition failed")
)
