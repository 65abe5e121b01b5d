package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/orchestrator"
)

var (
	fieldsSelect []int
	fieldsJSON   bool
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <template-id>",
	Short: "Show the fields a template asks for",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := newOrchestrator()
		if err != nil {
			return err
		}
		fields, err := gen.Fields(context.Background(), orchestrator.Request{
			TemplateID: args[0],
			State:      model.State{Selected: fieldsSelect},
		})
		if err != nil {
			return err
		}

		if fieldsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fields)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, field := range fields {
			fmt.Fprintf(w, "%s\t%s\t%s\n", field.Name, field.Label, field.Hint)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.Flags().IntSliceVar(&fieldsSelect, "select", nil, "Selected capsule ids")
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "Print fields as JSON")
}
