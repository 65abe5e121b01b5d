package main

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	contractgen "github.com/goliatone/go-contractgen"
	"github.com/goliatone/go-contractgen/internal/config"
	"github.com/goliatone/go-contractgen/pkg/bundle"
	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/orchestrator"
	"github.com/goliatone/go-contractgen/pkg/render"
)

var (
	envFile      string
	templatesDir string
	ordinals     string
	allowMarkup  bool
	themeName    string
	themeVariant string
	themeTokens  map[string]string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "contractgen",
	Short: "Fill and render contract templates",
	Long: `contractgen renders contract templates with variables, numbered clauses,
optional capsules and signature blocks.

Templates are loaded from --templates (or CONTRACTGEN_TEMPLATES_DIR); the
bundled samples are used when neither is set.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		loaded, err := config.Load(files...)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("templates") {
			loaded.TemplatesDir = templatesDir
		}
		if flags.Changed("ordinals") {
			loaded.Ordinals = ordinals
		}
		if flags.Changed("allow-markup") {
			loaded.AllowMarkup = allowMarkup
		}
		if flags.Changed("theme") {
			loaded.Theme = themeName
		}
		if flags.Changed("variant") {
			loaded.ThemeVariant = themeVariant
		}
		cfg = loaded
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "Optional .env file (defaults to ./.env)")
	flags.StringVar(&templatesDir, "templates", "", "Directory holding template bundles")
	flags.StringVar(&ordinals, "ordinals", "en", "Clause label language: en, es")
	flags.BoolVar(&allowMarkup, "allow-markup", false, "Let authored HTML through the sanitiser")
	flags.StringVar(&themeName, "theme", "", "Theme name passed to HTML output")
	flags.StringVar(&themeVariant, "variant", "", "Theme variant")
	flags.StringToStringVar(&themeTokens, "theme-token", nil, "Theme tokens exposed as CSS variables (key=value)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCatalog() (*bundle.Catalog, error) {
	if cfg.TemplatesDir == "" {
		return contractgen.LoadCatalog(nil)
	}
	return contractgen.LoadCatalog(os.DirFS(cfg.TemplatesDir))
}

func newOrchestrator() (*orchestrator.Orchestrator, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	options := []orchestrator.Option{
		orchestrator.WithCatalog(catalog),
		orchestrator.WithOrdinals(render.OrdinalsFor(cfg.Ordinals)),
		orchestrator.WithAllowMarkup(cfg.AllowMarkup),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithMemoSize(cfg.MemoSize),
	}
	if cfg.Theme != "" {
		options = append(options, orchestrator.WithThemeSelector(tokenThemeSelector{tokens: themeTokens}))
	}
	return orchestrator.New(options...), nil
}

// tokenThemeSelector selects a theme made only of the tokens given on the
// command line.
type tokenThemeSelector struct {
	tokens map[string]string
}

func (s tokenThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return &theme.Selection{
		Theme:   name,
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:   name,
			Tokens: s.tokens,
		},
	}, nil
}

// readState loads a values file. Files may hold a full state document
// (values, selected, active_field) or a flat map of values.
func readState(path string) (model.State, error) {
	if path == "" {
		return model.State{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.State{}, fmt.Errorf("read values: %w", err)
	}

	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return model.State{}, fmt.Errorf("parse values %s: %w", path, err)
	}
	_, hasValues := probe["values"]
	_, hasSelected := probe["selected"]

	var state model.State
	if hasValues || hasSelected {
		err = yaml.Unmarshal(data, &state)
	} else {
		err = yaml.Unmarshal(data, &state.Values)
	}
	if err != nil {
		return model.State{}, fmt.Errorf("parse values %s: %w", path, err)
	}
	return state, nil
}

func writeState(path string, state model.State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		out := cmd.OutOrStdout()
		_, err := out.Write(data)
		if err == nil && !strings.HasSuffix(string(data), "\n") {
			_, err = fmt.Fprintln(out)
		}
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Contract written to %s\n", path)
	return nil
}
