package attachment

import (
	"fmt"
	"strings"
)

// extensionMIME 固定扩展名到 MIME 的映射表
// 元数据不可靠：document_type 可能为空，文件名可能没有扩展名。
var extensionMIME = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"txt":  "text/plain",
	"csv":  "text/csv",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"zip":  "application/zip",
	"rar":  "application/vnd.rar",
}

// inlineExtensions 浏览器可直接渲染的扩展名，其余走 attachment 下载
var inlineExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"txt":  true,
}

// DefaultBinaryType 未知扩展名的兜底类型
const DefaultBinaryType = "application/octet-stream"

// documentExtension 推断扩展名：优先 document_type 字段，其次文件名最后一个点号段
// 两者都取不到时返回空串。
func documentExtension(documentType, documentName string) string {
	if documentType != "" {
		return strings.ToLower(documentType)
	}

	idx := strings.LastIndex(documentName, ".")
	if idx < 0 || idx == len(documentName)-1 {
		return ""
	}
	return strings.ToLower(documentName[idx+1:])
}

// ResolveDocumentContentType 根据不可靠的类型元数据决定 Content-Type 与 Content-Disposition
// 返回的 disposition 是完整头值（含文件名）。幂等：同样的输入永远得到同样的输出。
func ResolveDocumentContentType(documentType, documentName string) (contentType, disposition string) {
	ext := documentExtension(documentType, documentName)

	contentType = DefaultBinaryType
	if mime, ok := extensionMIME[ext]; ok {
		contentType = mime
	}

	mode := "attachment"
	if inlineExtensions[ext] {
		mode = "inline"
	}
	disposition = fmt.Sprintf(`%s; filename="%s"`, mode, SanitizeFilename(documentName))

	return contentType, disposition
}

// InlineDisposition 图片响应的 inline 头值，名称为空时使用兜底名
func InlineDisposition(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	return fmt.Sprintf(`inline; filename="%s"`, SanitizeFilename(name))
}

// SanitizeFilename 清理进入响应头的文件名
// 存储的名称不可信：CR/LF 会造成响应头注入，引号会破坏头值结构。
func SanitizeFilename(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f || r == '"' || r == '\\' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
