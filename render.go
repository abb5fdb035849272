package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/cvpress/config"
	"github.com/ByLCY/cvpress/dsl"
	"github.com/ByLCY/cvpress/layout"
	"github.com/ByLCY/cvpress/renderer"
	canvasrenderer "github.com/ByLCY/cvpress/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/cvpress/renderer/fpdf"
	"github.com/ByLCY/cvpress/resume"
)

func newRenderCmd(g *globalOptions) *cobra.Command {
	var (
		flags config.Config
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a resume into PDF files",
		Long:  "Loads a resume (.json or .cv), lays it out with the selected template(s) and writes one PDF per template.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				if flags.Template != "" {
					return fmt.Errorf("--template 与 --all 不能同时使用")
				}
				flags.Template = config.AllTemplates
			}
			cfg, err := resolveConfig(g, flags)
			if err != nil {
				return err
			}
			if cfg.Input == "" {
				return fmt.Errorf("缺少输入文件：请使用 --in 指定 .json 或 .cv 简历")
			}
			log, err := newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("初始化日志失败: %w", err)
			}
			defer log.Sync() //nolint:errcheck

			written, err := run(cmd.Context(), cfg, log)
			for _, path := range written {
				if path != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s\n", path)
				}
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.Input, "in", "i", "", "简历文件路径（.json 或 .cv）")
	f.StringVarP(&flags.Template, "template", "t", "", "模板 key，见 cvpress templates")
	f.BoolVar(&all, "all", false, "一次生成全部模板")
	f.StringVarP(&flags.Renderer, "renderer", "r", "", "渲染后端：canvas 或 fpdf")
	f.StringVarP(&flags.OutDir, "out", "o", "", "PDF 输出目录")
	f.StringVar(&flags.Debug, "debug", "", "布局调试 JSON 输出路径")
	f.StringVar(&flags.PageSize, "page", "", "纸张：A4、A5 或 LETTER")
	f.BoolVar(&flags.Landscape, "landscape", false, "横向页面")
	f.StringSliceVar(&flags.Margin, "margin", nil, "页边距，1~4 个长度值，如 15mm 或 10mm,20mm")
	f.StringVar(&flags.FilenamePattern, "pattern", "", "输出文件名模式，支持 ${name}、${template}、${ext}")
	f.BoolVar(&flags.Strict, "strict", false, "文档不完整时直接失败")
	return cmd
}

// run 串联加载、校验、布局与渲染。多个模板并发生成，返回值按模板顺序列出已写入的文件。
func run(ctx context.Context, cfg config.Config, log *zap.Logger) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := loadDocument(cfg.Input)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		if cfg.Strict {
			return nil, err
		}
		log.Warn("resume is incomplete, rendering anyway", zap.Error(err))
	}

	variants, err := cfg.Variants()
	if err != nil {
		return nil, err
	}
	page, err := cfg.PageSpec()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	written := make([]string, len(variants))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, v := range variants {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := renderVariant(doc, v, cfg, page, debugPath(cfg.Debug, v, len(variants) > 1), log)
			if err != nil {
				return fmt.Errorf("模板 %s: %w", v, err)
			}
			written[i] = path
			return nil
		})
	}
	return written, eg.Wait()
}

// renderVariant 为单个模板完成布局与渲染；每次调用使用独立的渲染器实例。
func renderVariant(doc *resume.Document, v layout.Variant, cfg config.Config, page layout.PageSpec, debug string, log *zap.Logger) (string, error) {
	r, err := newRenderer(cfg.Renderer)
	if err != nil {
		return "", err
	}
	result, err := layout.Build(doc, v, layout.BuildOptions{
		Typesetter:      r,
		Page:            page,
		FilenamePattern: cfg.FilenamePattern,
		Logger:          log,
	})
	if err != nil {
		return "", fmt.Errorf("布局计算失败: %w", err)
	}
	if debug != "" {
		if err := layout.WriteDebugJSON(result, debug); err != nil {
			return "", fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	pdfBytes, err := r.Render(result)
	if err != nil {
		return "", fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	out := filepath.Join(cfg.OutDir, result.Filename)
	if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	log.Info("rendered",
		zap.String("template", v.String()),
		zap.String("file", out),
		zap.Int("pages", result.Pages),
	)
	return out, nil
}

func newRenderer(name string) (renderer.Renderer, error) {
	switch name {
	case "", config.RendererCanvas:
		return canvasrenderer.NewRenderer(), nil
	case config.RendererFPDF:
		return fpdfrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("未知渲染后端 %q", name)
	}
}

// debugPath 在一次生成多个模板时为调试文件名加上模板后缀，避免互相覆盖。
func debugPath(path string, v layout.Variant, multi bool) string {
	if path == "" || !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + v.String() + ext
}

// loadDocument 按扩展名选择解析方式：.cv 使用 DSL，其余按 JSON 读取。
func loadDocument(path string) (*resume.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".cv") {
		doc, err := dsl.DecodeFile(path)
		if err != nil {
			var perr *dsl.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("解析简历失败: %w", err)
			}
			return nil, fmt.Errorf("无法打开简历文件 %s: %w", path, err)
		}
		return doc, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开简历文件 %s: %w", path, err)
	}
	defer file.Close()
	doc, err := resume.LoadJSON(file)
	if err != nil {
		return nil, fmt.Errorf("解析简历失败: %w", err)
	}
	return doc, nil
}
