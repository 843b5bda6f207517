package render

import "strings"

// Separator title/date 中代替空格传输的占位字符
const Separator = "_"

// 固定五个标记敏感字符，& 必须放第一个，避免把已生成的实体再转义一次
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// NormalizeSeparators 把占位分隔符还原成空格
// 必须在截断之前调用，截断长度按人类可读文本计算
func NormalizeSeparators(s string) string {
	return strings.ReplaceAll(s, Separator, " ")
}

// EscapeMarkup 转义标记敏感字符，整条流水线只调用一次，且在截断之后
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
