package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ByLCY/cvpress/config"
	"github.com/ByLCY/cvpress/layout"
)

func newTemplatesCmd(g *globalOptions) *cobra.Command {
	var flags config.Config
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List template variants and their column plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(g, flags)
			if err != nil {
				return err
			}
			page, err := cfg.PageSpec()
			if err != nil {
				return err
			}
			return printTemplates(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().StringVar(&flags.PageSize, "page", "", "纸张：A4、A5 或 LETTER")
	cmd.Flags().BoolVar(&flags.Landscape, "landscape", false, "横向页面")
	cmd.Flags().StringSliceVar(&flags.Margin, "margin", nil, "页边距，1~4 个长度值")
	return cmd
}

// printTemplates 输出每个模板的栏位规划（单位 mm）。
func printTemplates(w io.Writer, page layout.PageSpec) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEMPLATE\tALIGN\tHEADING\tDENSITY\tCOLUMNS")
	for _, v := range layout.Variants() {
		plan, err := layout.PlanFor(v, page)
		if err != nil {
			return err
		}
		heading := "regular"
		if plan.HeadingBold {
			heading = "bold"
		}
		cols := make([]string, 0, len(plan.Columns))
		for _, c := range plan.Columns {
			names := make([]string, 0, len(c.Sections))
			for _, s := range c.Sections {
				names = append(names, string(s))
			}
			cols = append(cols, fmt.Sprintf("%s %.0f@%.0f [%s]", c.Role, c.Width, c.X, strings.Join(names, ",")))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\n", v, plan.Align, heading, plan.Density, strings.Join(cols, " | "))
	}
	return tw.Flush()
}
