package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/tabprint/layout"
	"github.com/ByLCY/tabprint/source"
)

// maxUploadBytes 限制单次上传的大小。
const maxUploadBytes = 10 << 20

// maxColumns 是零页边距下列宽仍不小于 10pt 内边距的最大列数（792 / 10）。
// 补齐空白 tab 时页数最多增加 maxColumns-1。
const maxColumns = 79

// submission 是从表单中解析出的一次提交。
type submission struct {
	marginLeft  layout.Length
	marginRight layout.Length
	columns     int
	fillBlanks  bool
	submitter   string
	lines       []string
	raw         string
	uploadPath  string
}

// inputError 表示客户端提交的数据缺失或格式错误。
type inputError struct{ err error }

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func badInput(err error) error { return &inputError{err: err} }

// parseSubmission 解析表单字段，保存上传文件并读取其中的非空行。
// 未填写的边距与列数取 Defaults 中的值；fill_blanks 以复选框是否提交为准。
func (s *Server) parseSubmission(w http.ResponseWriter, r *http.Request) (*submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, badInput(fmt.Errorf("上传内容超过 %d 字节", maxErr.Limit))
		}
		return nil, badInput(fmt.Errorf("无法解析表单: %w", err))
	}

	d := s.cfg.Defaults
	sub := &submission{
		marginLeft:  d.MarginLeft,
		marginRight: d.MarginRight,
		columns:     d.Columns,
		submitter:   strings.TrimSpace(r.FormValue("submitter")),
	}
	if sub.submitter == "" {
		sub.submitter = "anonymous"
	}

	var err error
	if v := strings.TrimSpace(r.FormValue("margin_left")); v != "" {
		if sub.marginLeft, err = layout.ParseLength(v); err != nil {
			return nil, badInput(fmt.Errorf("margin_left: %w", err))
		}
	}
	if v := strings.TrimSpace(r.FormValue("margin_right")); v != "" {
		if sub.marginRight, err = layout.ParseLength(v); err != nil {
			return nil, badInput(fmt.Errorf("margin_right: %w", err))
		}
	}
	if v := strings.TrimSpace(r.FormValue("num_columns")); v != "" {
		if sub.columns, err = strconv.Atoi(v); err != nil {
			return nil, badInput(fmt.Errorf("num_columns %q 不是整数", v))
		}
	}
	if sub.columns > maxColumns {
		return nil, badInput(fmt.Errorf("num_columns 不能超过 %d", maxColumns))
	}
	// 未勾选的复选框不会出现在表单中，因此缺省即为关闭。
	sub.fillBlanks = checked(r.FormValue("fill_blanks"))

	file, _, err := r.FormFile("text_file")
	if err != nil {
		return nil, badInput(fmt.Errorf("%w: %v", source.ErrNoInput, err))
	}
	defer file.Close()

	sub.uploadPath, sub.lines, sub.raw, err = s.saveUpload(file)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func checked(v string) bool {
	v = strings.TrimSpace(v)
	return v == "on" || v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
}

// saveUpload 以唯一文件名保存上传内容，并在同一遍读取中解码出文本行。
func (s *Server) saveUpload(file io.Reader) (path string, lines []string, raw string, err error) {
	dst, err := os.CreateTemp(s.cfg.UploadDir, "upload-*.txt")
	if err != nil {
		return "", nil, "", fmt.Errorf("保存上传文件失败: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("保存上传文件失败: %w", cerr)
		}
	}()

	lines, raw, err = source.ReadLines(io.TeeReader(file, dst))
	if err != nil {
		return "", nil, "", badInput(err)
	}
	return dst.Name(), lines, raw, nil
}
