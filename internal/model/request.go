package model

// RenderRequest 分享卡片渲染请求
// title/date 中的下划线是空格占位符，计数字段缺省为 "0"
// repo 是历史遗留的参数名，实际含义是转发数（repost）
type RenderRequest struct {
	ID      string `form:"id"`
	Title   string `form:"title"`
	Date    string `form:"date"`
	Like    string `form:"like"`
	Comment string `form:"comment"`
	Repost  string `form:"repo"`
	Share   string `form:"share"`
}

// DeviceClass 客户端设备分类，只用于文字基线的垂直微调
type DeviceClass string

const (
	DeviceIOS     DeviceClass = "ios"
	DeviceAndroid DeviceClass = "android"
	DeviceOther   DeviceClass = "other"
)
