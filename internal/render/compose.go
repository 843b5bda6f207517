package render

import (
	"fmt"
	"strings"
)

// Counters 四个计数文案，调用方负责转义
type Counters struct {
	Like    string
	Comment string
	Repost  string
	Share   string
}

const (
	fontFamily = "-apple-system, 'PingFang SC', sans-serif"

	counterFontSize   = 34
	titleFontSize     = 44
	indicatorFontSize = 34
	dateFontSize      = 30

	textColor      = "#1f1f1f"
	indicatorColor = "#8a8a8a"
	dateColor      = "#8a8a8a"
)

// Compose 组装最终 SVG 文档，纯函数，相同输入必须产出逐字节相同的输出
// 底图拉伸铺满画布（preserveAspectRatio="none" 是有意为之），文字节点覆盖在上面
// date 与各计数由调用方先转义好，这里不再做任何文本处理
func (l Layout) Compose(dataURI string, res LayoutResult, date string, c Counters) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		l.CanvasWidth, l.CanvasHeight, l.CanvasWidth, l.CanvasHeight)
	fmt.Fprintf(&b,
		`<image href="%s" x="0" y="0" width="%d" height="%d" preserveAspectRatio="none"/>`,
		dataURI, l.CanvasWidth, l.CanvasHeight)

	counterY := l.CounterBaselineY + res.VerticalOffset
	fmt.Fprintf(&b, `<g font-family="%s" font-size="%d" fill="%s">`,
		fontFamily, counterFontSize, textColor)
	for i, v := range []string{c.Like, c.Comment, c.Repost, c.Share} {
		fmt.Fprintf(&b, `<text x="%d" y="%d">%s</text>`, l.CounterXs[i], counterY, v)
	}
	b.WriteString(`</g>`)

	fmt.Fprintf(&b,
		`<text x="%d" y="%d" font-family="%s" font-size="%d" font-weight="bold" fill="%s">%s</text>`,
		l.TitleX, l.TitleBaselineY+res.VerticalOffset,
		fontFamily, titleFontSize, textColor, res.DisplayTitle)

	// 标题被截断时才画 "more" 标签
	if res.IsTruncated {
		fmt.Fprintf(&b,
			`<text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s">more</text>`,
			res.OverflowIndicatorX, l.TitleBaselineY+res.VerticalOffset,
			fontFamily, indicatorFontSize, indicatorColor)
	}

	fmt.Fprintf(&b,
		`<text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s">%s</text>`,
		l.TitleX, l.DateBaselineY+res.VerticalOffset,
		fontFamily, dateFontSize, dateColor, date)

	b.WriteString(`</svg>`)

	return b.String()
}
