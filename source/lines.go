// Package source turns an uploaded text resource into the ordered line list
// consumed by the layout engine.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/tabprint/layout"
)

// ErrNoInput 表示上传内容缺失或无法读取。
var ErrNoInput = errors.New("source: 缺少上传的文本文件")

// maxLineBytes 限制单行长度，防止异常文件撑爆内存。
const maxLineBytes = 1 << 20

// ReadLines 读取文本，按行返回去除首尾空白后的非空行。
// 支持 UTF-8（可带 BOM）与带 BOM 的 UTF-16；每行做 NFC 规范化。
// raw 返回解码后的完整文本，供记录存储使用。
func ReadLines(r io.Reader) (lines []string, raw string, err error) {
	if r == nil {
		return nil, "", ErrNoInput
	}
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var (
		all      strings.Builder
		rawLines []string
	)
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		text := scanner.Text()
		all.WriteString(text)
		all.WriteByte('\n')
		rawLines = append(rawLines, norm.NFC.String(text))
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("读取文本失败: %w", err)
	}
	return layout.CleanLines(rawLines), all.String(), nil
}
