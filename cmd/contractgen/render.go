package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contractgen/pkg/orchestrator"
)

var (
	renderValues   string
	renderSelect   []int
	renderRenderer string
	renderFragment bool
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render <template-id>",
	Short: "Render a template with a values file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := readState(renderValues)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("select") {
			state.Selected = renderSelect
		}

		gen, err := newOrchestrator()
		if err != nil {
			return err
		}
		out, err := gen.Generate(context.Background(), orchestrator.Request{
			TemplateID:   args[0],
			State:        state,
			Renderer:     renderRenderer,
			ThemeName:    cfg.Theme,
			ThemeVariant: cfg.ThemeVariant,
			Fragment:     renderFragment,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd, renderOutput, out)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	flags := renderCmd.Flags()
	flags.StringVar(&renderValues, "values", "", "YAML or JSON values file")
	flags.IntSliceVar(&renderSelect, "select", nil, "Selected capsule ids (overrides the values file)")
	flags.StringVar(&renderRenderer, "renderer", "", "Renderer: html, text, terminal")
	flags.BoolVar(&renderFragment, "fragment", false, "Render the HTML body only")
	flags.StringVar(&renderOutput, "output", "", "Output file (stdout if empty)")
}
