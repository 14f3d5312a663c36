package attachment

import (
	"fmt"
	"html"
	"strings"
)

// SVGContentType 占位图的响应类型
const SVGContentType = "image/svg+xml"

// 占位图固定尺寸
const (
	placeholderWidth  = 320
	placeholderHeight = 200
)

// 占位图配色：中性态与错误态
const (
	neutralFill = "#eceff1"
	neutralText = "#607d8b"
	errorFill   = "#fdecea"
	errorText   = "#c0392b"
)

// NotFoundPlaceholder 未找到图片时的中性占位图，嵌入两个数值 ID 作为诊断文本
func NotFoundPlaceholder(assetID, imageID uint) []byte {
	return renderPlaceholder(neutralFill, neutralText,
		"Image not available",
		fmt.Sprintf("Asset: %d", assetID),
		fmt.Sprintf("Image: %d", imageID),
	)
}

// EmptyBlobPlaceholder 行有记录但图片数据为空时的中性占位图
func EmptyBlobPlaceholder(imageName string) []byte {
	label := "No image data"
	if imageName != "" {
		label = imageName
	}
	return renderPlaceholder(neutralFill, neutralText, "Image not available", label)
}

// InvalidIDPlaceholder ID 解析失败时的错误占位图，嵌入原始（未解析的）ID 字符串
func InvalidIDPlaceholder(rawAssetID, rawImageID string) []byte {
	return renderPlaceholder(errorFill, errorText,
		"Invalid IDs",
		fmt.Sprintf("Asset: %s", rawAssetID),
		fmt.Sprintf("Image: %s", rawImageID),
	)
}

// ErrorPlaceholder 内部错误时的通用错误占位图
func ErrorPlaceholder() []byte {
	return renderPlaceholder(errorFill, errorText, "Image unavailable", "Internal error")
}

// renderPlaceholder 生成固定尺寸的占位 SVG
// 所有文本行都经过 XML 转义，保证对任意输入输出合法的 image/svg+xml。
func renderPlaceholder(fill, textColor, title string, lines ...string) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		placeholderWidth, placeholderHeight, placeholderWidth, placeholderHeight)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="%s"/>`,
		placeholderWidth, placeholderHeight, fill)
	fmt.Fprintf(&sb,
		`<rect x="0.5" y="0.5" width="%d" height="%d" fill="none" stroke="%s" stroke-opacity="0.4"/>`,
		placeholderWidth-1, placeholderHeight-1, textColor)

	y := 84
	fmt.Fprintf(&sb,
		`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="16" font-weight="bold" fill="%s">%s</text>`,
		placeholderWidth/2, y, textColor, html.EscapeString(title))

	for _, line := range lines {
		y += 26
		fmt.Fprintf(&sb,
			`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="13" fill="%s">%s</text>`,
			placeholderWidth/2, y, textColor, html.EscapeString(line))
	}

	sb.WriteString(`</svg>`)
	return []byte(sb.String())
}
