// Package server exposes the tab layout over HTTP: an upload form, PDF
// generation, a PNG preview and the submission history.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/ByLCY/tabprint/layout"
	"github.com/ByLCY/tabprint/records"
	"github.com/ByLCY/tabprint/renderer"
	"github.com/ByLCY/tabprint/renderer/preview"
)

//go:embed templates/index.html
var templateFS embed.FS

// DownloadName 是返回给浏览器的附件文件名。
const DownloadName = "Tabbed_Output.pdf"

// Config 汇总服务依赖。Records 为空时不记录提交。
type Config struct {
	Defaults  layout.Defaults
	Backend   renderer.Backend
	Preview   *preview.Renderer
	Records   *records.Store
	UploadDir string
	OutputDir string
}

// Server 处理 HTTP 请求。
type Server struct {
	cfg   Config
	index *template.Template
}

// New 校验依赖并创建上传与输出目录。
func New(cfg Config) (*Server, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("server: 缺少渲染后端")
	}
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if dir == "" {
			return nil, fmt.Errorf("server: 上传与输出目录不能为空")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建目录 %s 失败: %w", dir, err)
		}
	}
	tpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	return &Server{cfg: cfg, index: tpl}, nil
}

// Handler 返回注册好全部路由的 http.Handler。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /generate_pdf", s.handleGenerate)
	mux.HandleFunc("POST /preview", s.handlePreview)
	mux.HandleFunc("GET /records", s.handleRecords)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	d := s.cfg.Defaults
	data := struct {
		MarginLeft  string
		MarginRight string
		Columns     int
		FillBlanks  bool
	}{
		MarginLeft:  strconv.FormatFloat(d.MarginLeft.Inches(), 'f', -1, 64),
		MarginRight: strconv.FormatFloat(d.MarginRight.Inches(), 'f', -1, 64),
		Columns:     d.Columns,
		FillBlanks:  d.FillBlanks,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, data); err != nil {
		log.Printf("渲染首页失败: %v", err)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sub, err := s.parseSubmission(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := s.build(sub)
	var (
		data   []byte
		output string
	)
	if err == nil {
		data, err = s.cfg.Backend.Render(doc)
		if err == nil {
			output, err = s.writeOutput(data)
		}
	}
	s.record(sub, err, output)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	log.Printf("%s %s: %d 行 -> %d 页, 输出 %s", r.Method, r.URL.Path, len(sub.lines), len(doc.Pages), output)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Preview == nil {
		http.Error(w, "预览未启用", http.StatusNotFound)
		return
	}
	sub, err := s.parseSubmission(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page := 0
	if v := r.FormValue("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil {
			s.fail(w, r, badInput(fmt.Errorf("页码 %q 无效", v)))
			return
		}
	}
	doc, err := s.build(sub)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := s.cfg.Preview.RenderPage(doc, page)
	if err != nil {
		s.fail(w, r, badInput(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	list := []records.Record{}
	if s.cfg.Records != nil {
		var err error
		list, err = s.cfg.Records.List()
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		log.Printf("输出记录失败: %v", err)
	}
}

func (s *Server) build(sub *submission) (*layout.Document, error) {
	req, err := layout.NewRequest(sub.marginLeft, sub.marginRight, sub.columns, sub.fillBlanks, sub.lines)
	if err != nil {
		return nil, err
	}
	return layout.Build(req, layout.BuildOptions{Measurer: s.cfg.Backend, Meta: s.cfg.Defaults.Meta})
}

// writeOutput 为每个请求写入独立的输出文件，避免并发请求互相覆盖。
func (s *Server) writeOutput(data []byte) (path string, err error) {
	f, err := os.CreateTemp(s.cfg.OutputDir, "Tabbed_Output-*.pdf")
	if err != nil {
		return "", fmt.Errorf("创建输出文件失败: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("关闭输出文件失败: %w", cerr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("写入输出文件失败: %w", err)
	}
	return f.Name(), nil
}

func (s *Server) record(sub *submission, buildErr error, output string) {
	if s.cfg.Records == nil {
		return
	}
	status := records.StatusOK
	switch {
	case errors.Is(buildErr, layout.ErrConfiguration):
		status = records.StatusConfigError
	case errors.Is(buildErr, layout.ErrFit):
		status = records.StatusFitError
	case buildErr != nil:
		// 渲染或写文件失败不记录。
		return
	}
	_, err := s.cfg.Records.Append(records.Record{
		Submitter:   sub.submitter,
		Text:        sub.raw,
		MarginLeft:  sub.marginLeft.Inches(),
		MarginRight: sub.marginRight.Inches(),
		Columns:     sub.columns,
		FillBlanks:  sub.fillBlanks,
		Status:      status,
		Upload:      sub.uploadPath,
		Output:      output,
	})
	if err != nil {
		log.Printf("写入提交记录失败: %v", err)
	}
}

// fail 把错误映射为 HTTP 状态码：输入、参数与文本过长为 400，其余为 500。
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	msg := "服务器内部错误"
	var in *inputError
	switch {
	case errors.As(err, &in):
		code, msg = http.StatusBadRequest, in.Error()
	case errors.Is(err, layout.ErrConfiguration):
		code, msg = http.StatusBadRequest, "页边距或列数无效："+err.Error()
	case errors.Is(err, layout.ErrFit):
		code, msg = http.StatusBadRequest, "文本过长，超出当前 tab 尺寸："+err.Error()
	}
	log.Printf("%s %s: %d %v", r.Method, r.URL.Path, code, err)
	http.Error(w, msg, code)
}
