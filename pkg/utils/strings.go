package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify 空白串替换为 "-" 并转小写，对已规范化的输入幂等
func Slugify(s string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(s, "-"))
}

// CapitalizeFirst 首字母大写，其余不变
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
