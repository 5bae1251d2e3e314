package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ByLCY/tabprint/dsl"
	"github.com/ByLCY/tabprint/layout"
	"github.com/ByLCY/tabprint/records"
	"github.com/ByLCY/tabprint/renderer"
	canvasrenderer "github.com/ByLCY/tabprint/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/tabprint/renderer/fpdf"
	"github.com/ByLCY/tabprint/renderer/preview"
	"github.com/ByLCY/tabprint/server"
	"github.com/ByLCY/tabprint/source"
)

func main() {
	addr := flag.String("addr", envOr("ADDR", ":"+envOr("PORT", "5000")), "HTTP 监听地址")
	profilePath := flag.String("profile", "", ".tabs 配置文件路径")
	profileName := flag.String("profile-name", "default", "使用的 profile 名称")
	backendName := flag.String("renderer", "", "渲染后端：canvas 或 fpdf（默认取 profile，否则 canvas）")
	fontPath := flag.String("font", "", "canvas 后端使用的 TTF/OTF 字体文件")
	uploadDir := flag.String("uploads", "uploads", "上传文件保存目录")
	outputDir := flag.String("outputs", "output", "生成的 PDF 保存目录")
	recordsPath := flag.String("records", "records.jsonl", "提交记录文件")
	input := flag.String("in", "", "一次性模式：输入文本文件（设置后不启动服务）")
	output := flag.String("out", "output/Tabbed_Output.pdf", "一次性模式：PDF 输出路径")
	debug := flag.String("debug", "", "一次性模式：排版调试 JSON 输出路径")
	flag.Parse()

	defaults, err := loadDefaults(*profilePath, *profileName)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *backendName != "" {
		defaults.Renderer = *backendName
	}
	backend, err := newBackend(defaults.Renderer, *fontPath)
	if err != nil {
		log.Fatalf("创建渲染后端失败: %v", err)
	}

	if *input != "" {
		if err := run(*input, *output, *debug, defaults, backend); err != nil {
			log.Fatalf("生成 PDF 失败: %v", err)
		}
		fmt.Printf("已生成 PDF：%s\n", *output)
		return
	}

	store, err := records.Open(*recordsPath)
	if err != nil {
		log.Fatalf("打开记录文件失败: %v", err)
	}
	pv, err := preview.NewRenderer(preview.DefaultScale)
	if err != nil {
		log.Fatalf("创建预览渲染器失败: %v", err)
	}
	srv, err := server.New(server.Config{
		Defaults:  defaults,
		Backend:   backend,
		Preview:   pv,
		Records:   store,
		UploadDir: *uploadDir,
		OutputDir: *outputDir,
	})
	if err != nil {
		log.Fatalf("创建服务失败: %v", err)
	}

	hs := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("监听 %s（渲染后端 %s）", *addr, backendLabel(defaults.Renderer))
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("服务退出: %v", err)
	}
}

// run 串联读取、排版与渲染。
func run(inputPath, outputPath, debugPath string, defaults layout.Defaults, backend renderer.Backend) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开文本文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	lines, _, err := source.ReadLines(file)
	if err != nil {
		return err
	}

	req, err := layout.NewRequest(defaults.MarginLeft, defaults.MarginRight, defaults.Columns, defaults.FillBlanks, lines)
	if err != nil {
		return fmt.Errorf("排版参数无效: %w", err)
	}
	doc, err := layout.Build(req, layout.BuildOptions{Measurer: backend, Meta: defaults.Meta})
	if err != nil {
		return fmt.Errorf("排版计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(doc, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := backend.Render(doc)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func loadDefaults(path, name string) (layout.Defaults, error) {
	if path == "" {
		return layout.DefaultSettings(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return layout.Defaults{}, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	defer file.Close()

	parsed, err := dsl.Parse(file)
	if err != nil {
		return layout.Defaults{}, fmt.Errorf("解析配置文件失败: %w", err)
	}
	p := parsed.Lookup(name)
	if p == nil {
		return layout.Defaults{}, fmt.Errorf("配置文件中没有 profile %s", name)
	}
	return layout.ProfileDefaults(p)
}

func newBackend(name, fontPath string) (renderer.Backend, error) {
	switch name {
	case "", "canvas":
		r, err := canvasrenderer.NewRenderer(canvasrenderer.Options{Font: canvasrenderer.Resource{Path: fontPath}})
		if err != nil {
			return nil, err
		}
		return r, nil
	case "fpdf":
		return fpdfrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("未知的渲染后端 %q", name)
	}
}

func backendLabel(name string) string {
	if name == "" {
		return "canvas"
	}
	return name
}

func writeDebug(doc *layout.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
