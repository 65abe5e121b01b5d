package model

import "sort"

// Capsule is an optional clause block the buyer can add to a contract.
// Price, Description, and DisplayOrder are business metadata the engine never
// inspects.
type Capsule struct {
	ID           int    `json:"id" yaml:"id"`
	Slug         string `json:"slug" yaml:"slug"`
	Title        string `json:"title" yaml:"title"`
	Price        string `json:"price,omitempty" yaml:"price,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	DisplayOrder int    `json:"display_order,omitempty" yaml:"display_order,omitempty"`
}

// NumberingDirective describes a clause heading that receives a computed
// ordinal label. CapsuleSlug is empty for clauses that are always present.
type NumberingDirective struct {
	Order       int    `json:"order" yaml:"order"`
	Title       string `json:"title" yaml:"title"`
	InCapsule   bool   `json:"is_in_capsule" yaml:"is_in_capsule"`
	CapsuleSlug string `json:"capsule_slug,omitempty" yaml:"capsule_slug,omitempty"`
}

// Template is a stored contract template bundle. TextFile is only used by the
// bundle loader, which resolves it into Text.
type Template struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string               `json:"version,omitempty" yaml:"version,omitempty"`
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Text        string               `json:"text,omitempty" yaml:"text,omitempty"`
	TextFile    string               `json:"text_file,omitempty" yaml:"text_file,omitempty"`
	Capsules    []Capsule            `json:"capsules,omitempty" yaml:"capsules,omitempty"`
	Numbering   []NumberingDirective `json:"numbering,omitempty" yaml:"numbering,omitempty"`

	Source string `json:"-" yaml:"-"`
}

// State captures the user input for a single render.
type State struct {
	Values      map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	Selected    []int             `json:"selected,omitempty" yaml:"selected,omitempty"`
	ActiveField string            `json:"active_field,omitempty" yaml:"active_field,omitempty"`
}

// SelectedSet converts a list of capsule ids into a lookup set.
func SelectedSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// SelectedSlugs returns the slugs of the capsules whose id is selected.
func SelectedSlugs(capsules []Capsule, ids []int) map[string]struct{} {
	selected := SelectedSet(ids)
	slugs := make(map[string]struct{}, len(ids))
	for _, capsule := range capsules {
		if capsule.Slug == "" {
			continue
		}
		if _, ok := selected[capsule.ID]; ok {
			slugs[capsule.Slug] = struct{}{}
		}
	}
	return slugs
}

// SelectedSlugs returns the slugs of the template capsules selected by ids.
func (t Template) SelectedSlugs(ids []int) map[string]struct{} {
	return SelectedSlugs(t.Capsules, ids)
}

// Capsule looks up a capsule by id.
func (t Template) Capsule(id int) (Capsule, bool) {
	for _, capsule := range t.Capsules {
		if capsule.ID == id {
			return capsule, true
		}
	}
	return Capsule{}, false
}

// SortedCapsules returns the capsules ordered for display.
func (t Template) SortedCapsules() []Capsule {
	out := append([]Capsule(nil), t.Capsules...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Clone returns a copy of the state whose maps and slices can be mutated
// without touching the original.
func (s State) Clone() State {
	out := State{ActiveField: s.ActiveField}
	if s.Values != nil {
		out.Values = make(map[string]string, len(s.Values))
		for key, value := range s.Values {
			out.Values[key] = value
		}
	}
	if s.Selected != nil {
		out.Selected = append([]int(nil), s.Selected...)
	}
	return out
}
