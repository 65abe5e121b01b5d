package bundle

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contractgen/pkg/model"
)

// LoadFS walks fsys and loads every .json, .yaml and .yml bundle into a new
// catalog. Each template is validated before it is added. A nil fsys yields
// an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isBundleFile(p) {
			return nil
		}

		tpl, err := ReadTemplate(fsys, p)
		if err != nil {
			return err
		}
		if err := Validate(tpl); err != nil {
			return fmt.Errorf("bundle: %s: %w", p, err)
		}
		return catalog.Add(tpl)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// ReadTemplate parses a single bundle file and resolves its text_file.
func ReadTemplate(fsys fs.FS, p string) (model.Template, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return model.Template{}, fmt.Errorf("bundle: read %s: %w", p, err)
	}

	tpl, err := parseTemplate(data, p)
	if err != nil {
		return model.Template{}, err
	}

	if tpl.Text == "" && tpl.TextFile != "" {
		textPath := path.Join(path.Dir(p), tpl.TextFile)
		body, err := fs.ReadFile(fsys, textPath)
		if err != nil {
			return model.Template{}, fmt.Errorf("bundle: read text %s for %s: %w", textPath, p, err)
		}
		tpl.Text = string(body)
	}
	tpl.ID = strings.TrimSpace(tpl.ID)
	tpl.Source = p
	return tpl, nil
}

func parseTemplate(data []byte, source string) (model.Template, error) {
	var tpl model.Template
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Template{}, fmt.Errorf("bundle: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &tpl); err != nil {
			return model.Template{}, fmt.Errorf("bundle: parse %s: %w", source, err)
		}
		return tpl, nil
	}

	if err := json.Unmarshal(data, &tpl); err == nil {
		return tpl, nil
	}
	tpl = model.Template{}
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return model.Template{}, fmt.Errorf("bundle: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return tpl, nil
}

func isBundleFile(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
