package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contractgen/pkg/orchestrator"
	"github.com/goliatone/go-contractgen/pkg/renderers/terminal"
	"github.com/goliatone/go-contractgen/pkg/renderers/tui"
)

var (
	fillValues   string
	fillSave     string
	fillRenderer string
	fillOutput   string
)

var fillCmd = &cobra.Command{
	Use:   "fill <template-id>",
	Short: "Answer a template's fields interactively and render the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		initial, err := readState(fillValues)
		if err != nil {
			return err
		}

		gen, err := newOrchestrator()
		if err != nil {
			return err
		}
		tpl, err := gen.Template(ctx, orchestrator.Request{TemplateID: args[0]})
		if err != nil {
			return err
		}

		collector := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())))
		state, err := collector.Collect(ctx, tpl, initial)
		if errors.Is(err, tui.ErrAborted) {
			return fmt.Errorf("fill %s: aborted", tpl.ID)
		}
		if err != nil {
			return err
		}

		if fillSave != "" {
			if err := writeState(fillSave, state); err != nil {
				return err
			}
		}

		out, err := gen.Generate(ctx, orchestrator.Request{
			Template:     &tpl,
			State:        state,
			Renderer:     fillRenderer,
			ThemeName:    cfg.Theme,
			ThemeVariant: cfg.ThemeVariant,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd, fillOutput, out)
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
	flags := fillCmd.Flags()
	flags.StringVar(&fillValues, "values", "", "YAML or JSON values file used as defaults")
	flags.StringVar(&fillSave, "save", "", "Write the collected values to this file")
	flags.StringVar(&fillRenderer, "renderer", terminal.Name, "Renderer: html, text, terminal")
	flags.StringVar(&fillOutput, "output", "", "Output file (stdout if empty)")
}
