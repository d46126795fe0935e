package service

import (
	"strings"
	"unicode/utf8"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"
)

const maxHandleLength = 64

// NormalizePostContent 去掉首尾空白后校验长度（按字符计），中间内容原样保留
func NormalizePostContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", validationError("Post content cannot be empty")
	}
	if utf8.RuneCountInString(content) > model.MaxPostLength {
		return "", validationError("Post content cannot exceed 500 characters")
	}
	return content, nil
}

// resolveHandle 未填 handle 时由团队名推导
func resolveHandle(name, rawHandle string) (string, error) {
	var handle string
	if strings.TrimSpace(rawHandle) == "" {
		handle = pkg.Slugify(name)
	} else {
		handle = pkg.SanitizeHandle(rawHandle)
	}
	if handle == "" || !pkg.HandlePattern.MatchString(handle) {
		return "", validationError("Team handle must contain letters or numbers")
	}
	if len(handle) > maxHandleLength {
		return "", validationError("Team handle cannot exceed 64 characters")
	}
	return handle, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
