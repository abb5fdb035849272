package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/cvpress/dsl"
	"github.com/ByLCY/cvpress/resume"
)

func newSampleCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the built-in sample resume",
		Long:  "Writes the sample resume used by the template gallery, as JSON or in the .cv text format.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("创建文件失败: %w", err)
				}
				defer f.Close()
				w = f
			}
			return writeSample(w, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "输出格式：json 或 cv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件路径，默认写到标准输出")
	return cmd
}

func writeSample(w io.Writer, format string) error {
	switch format {
	case "json":
		return resume.WriteJSON(w, resume.Sample())
	case "cv":
		return dsl.Encode(w, resume.Sample())
	default:
		return fmt.Errorf("未知格式 %q（可选 json、cv）", format)
	}
}
