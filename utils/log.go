package utils

import (
	"log"
	"strings"
	"unicode"

	"github.com/teolier/asset-office/config"
)

// SanitizeLogMessage 清理进入日志的用户可控字符串
func SanitizeLogMessage(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		if r == 10 || r == 9 {
			sb.WriteRune(r)
		} else if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// LogIfDevf 仅在开发环境输出的日志
func LogIfDevf(format string, args ...interface{}) {
	if config.IsDevelopment() {
		log.Printf(format, args...)
	}
}
