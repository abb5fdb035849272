// Package main provides the cvpress command line: render resumes into paginated PDFs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByLCY/cvpress/config"
)

// globalOptions 由所有子命令共享。
type globalOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:           "cvpress",
		Short:         "Resume layout and pagination engine",
		Long:          "cvpress lays out structured resume data with one of six templates and renders paginated PDF documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "JSON 配置文件路径（也可用 CVPRESS_CONFIG）")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "输出调试日志")

	root.AddCommand(newRenderCmd(g), newTemplatesCmd(g), newSampleCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig 按优先级合并配置：命令行 > 环境变量 > 配置文件 > 内置默认值。
func resolveConfig(g *globalOptions, flags config.Config) (config.Config, error) {
	env := config.FromEnv(os.Getenv)
	merged := flags.MergeWithDefaults(env)

	path := g.configPath
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG")
	}
	if path != "" {
		file, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		merged = merged.MergeWithDefaults(*file)
	}
	merged = merged.MergeWithDefaults(config.Defaults())
	merged.Verbose = merged.Verbose || g.verbose

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
