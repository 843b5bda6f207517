package render

import (
	"math"
	"strings"
	"unicode/utf8"

	"snscard-backend/internal/model"
)

// Layout 画布与文字坐标契约
// 所有常量都是对现有消费方的兼容承诺，改动任何一个都会造成旧链接预览错位
type Layout struct {
	CanvasWidth  int
	CanvasHeight int

	TitleLimit   int     // 标题截断上限（按字符数）
	CharWidth    float64 // 估算的平均字宽，不是精确测量
	IndicatorPad int     // "more" 标签与标题末尾的间距

	CounterBaselineY int // 四个计数的共享基线
	TitleBaselineY   int
	DateBaselineY    int

	TitleX    int
	CounterXs [4]int // like / comment / repost / share
}

// DefaultLayout 对应 1170x2439 的卡片底图
var DefaultLayout = Layout{
	CanvasWidth:  1170,
	CanvasHeight: 2439,

	TitleLimit:   22,
	CharWidth:    26.5,
	IndicatorPad: 8,

	CounterBaselineY: 2090,
	TitleBaselineY:   2183,
	DateBaselineY:    2260,

	TitleX:    38,
	CounterXs: [4]int{134, 342, 542, 755},
}

// LayoutResult 标题排版结果
type LayoutResult struct {
	DisplayTitle       string // 已归一化、截断并转义
	IsTruncated        bool
	OverflowIndicatorX int
	VerticalOffset     int
}

// DetectDeviceClass 从 User-Agent 粗分设备类型，先匹配 iOS 再匹配 Android
func DetectDeviceClass(userAgent string) model.DeviceClass {
	switch {
	case strings.Contains(userAgent, "iPhone"),
		strings.Contains(userAgent, "iPad"),
		strings.Contains(userAgent, "iPod"):
		return model.DeviceIOS
	case strings.Contains(userAgent, "Android"):
		return model.DeviceAndroid
	default:
		return model.DeviceOther
	}
}

// VerticalOffset 每种设备一个固定偏移，整张卡片所有文字基线统一平移
func VerticalOffset(device model.DeviceClass) int {
	switch device {
	case model.DeviceIOS:
		return -1
	case model.DeviceAndroid:
		return 1
	default:
		return 0
	}
}

// Calculate 由原始标题和设备类型得出排版结果
// 处理顺序固定：归一化 -> 截断 -> 转义，截断按人类可读字符数
func (l Layout) Calculate(title string, device model.DeviceClass) LayoutResult {
	normalized := NormalizeSeparators(title)

	truncated := false
	if utf8.RuneCountInString(normalized) > l.TitleLimit {
		normalized = string([]rune(normalized)[:l.TitleLimit]) + "..."
		truncated = true
	}

	display := EscapeMarkup(normalized)

	// "more" 标签的横坐标按转义后标题的字符数乘平均字宽估算
	// 26.5 是老版本留下来的经验值，不保证像素级对齐，但要原样保留
	indicatorX := l.TitleX +
		int(math.Floor(float64(utf8.RuneCountInString(display))*l.CharWidth)) +
		l.IndicatorPad

	return LayoutResult{
		DisplayTitle:       display,
		IsTruncated:        truncated,
		OverflowIndicatorX: indicatorX,
		VerticalOffset:     VerticalOffset(device),
	}
}
