// Package attachment 实现附件检索核心：路径解析、内容协商与占位图合成。
// 与具体路由框架无关，便于独立单元测试。
package attachment

import (
	"strconv"
	"strings"
)

// ParseErrorKind 路径解析失败类别
type ParseErrorKind int

const (
	// MalformedPath 路径段数不足
	MalformedPath ParseErrorKind = iota
	// InvalidIdentifier ID 段不是合法整数
	InvalidIdentifier
)

// ParseError 路径解析错误
// InvalidIdentifier 时携带原始 ID 字符串，供占位图嵌入诊断文本。
type ParseError struct {
	Kind            ParseErrorKind
	RawAssetID      string
	RawAttachmentID string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MalformedPath:
		return "malformed path, expected /{prefix}/{assetId}/{kind}/{attachmentId}"
	case InvalidIdentifier:
		return "invalid identifiers: asset=" + e.RawAssetID + " attachment=" + e.RawAttachmentID
	default:
		return "path parse error"
	}
}

// ResourcePath 解析结果
type ResourcePath struct {
	AssetID      uint
	AttachmentID uint
}

// ParseResourcePath 从原始请求路径解析资产 ID 与附件 ID
// 不依赖路由框架的参数提取：按非空段切分，要求至少四段，
// 取第二段为 assetId、第四段为 attachmentId，均按十进制整数解析。
func ParseResourcePath(path string) (*ResourcePath, *ParseError) {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	if len(segments) < 4 {
		return nil, &ParseError{Kind: MalformedPath}
	}

	rawAsset := segments[1]
	rawAttachment := segments[3]

	assetID, errAsset := strconv.ParseUint(rawAsset, 10, 32)
	attachmentID, errAttachment := strconv.ParseUint(rawAttachment, 10, 32)
	if errAsset != nil || errAttachment != nil {
		return nil, &ParseError{
			Kind:            InvalidIdentifier,
			RawAssetID:      rawAsset,
			RawAttachmentID: rawAttachment,
		}
	}

	return &ResourcePath{
		AssetID:      uint(assetID),
		AttachmentID: uint(attachmentID),
	}, nil
}
