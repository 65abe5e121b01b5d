// Package tui collects contract state interactively: optional clauses first,
// then every live field of the template.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/variables"
)

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix string
}

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithLabeler overrides how field labels are derived from variable names.
func WithLabeler(labeler model.Labeler) Option {
	return func(c *Collector) {
		if labeler != nil {
			c.labeler = labeler
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}

// Collector walks a user through a template.
type Collector struct {
	driver  PromptDriver
	labeler model.Labeler
	theme   Theme
}

// New returns a collector prompting through survey unless another driver is
// supplied.
func New(options ...Option) *Collector {
	c := &Collector{labeler: model.DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Collect asks for the capsule selection and then for every live field,
// offering current values as defaults. Values of fields that are no longer
// live are kept. When fields remain empty the user may go over them once more.
func (c *Collector) Collect(ctx context.Context, tpl model.Template, initial model.State) (model.State, error) {
	if c == nil || c.driver == nil {
		return model.State{}, ErrNoDriver
	}
	state := initial.Clone()
	if state.Values == nil {
		state.Values = make(map[string]string)
	}

	if len(tpl.Capsules) > 0 {
		selected, err := c.askCapsules(ctx, tpl, state.Selected)
		if err != nil {
			return model.State{}, err
		}
		state.Selected = selected
	}

	fields := variables.Fields(tpl.Text, tpl.Capsules, state.Selected, c.labeler)
	if len(fields) == 0 {
		return state, c.info(ctx, "This template has no fields to fill.")
	}

	for _, field := range fields {
		if err := c.askField(ctx, field, state.Values); err != nil {
			return model.State{}, err
		}
	}

	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	if missing := variables.Missing(names, state.Values); len(missing) > 0 {
		again, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%d field(s) are still empty. Fill them now?", len(missing)),
			Default: true,
		})
		if err != nil {
			return model.State{}, err
		}
		if again {
			for _, field := range fields {
				if state.Values[field.Name] != "" {
					continue
				}
				if err := c.askField(ctx, field, state.Values); err != nil {
					return model.State{}, err
				}
			}
		}
	}

	completion := variables.Completion(names, state.Values)
	if err := c.info(ctx, fmt.Sprintf("Completed %d%% of %d fields.", int(math.Round(completion*100)), len(names))); err != nil {
		return model.State{}, err
	}
	return state, nil
}

func (c *Collector) askCapsules(ctx context.Context, tpl model.Template, current []int) ([]int, error) {
	capsules := tpl.SortedCapsules()
	chosen := model.SelectedSet(current)

	options := make([]string, len(capsules))
	var defaults []int
	for i, capsule := range capsules {
		options[i] = capsuleOption(capsule)
		if _, ok := chosen[capsule.ID]; ok {
			defaults = append(defaults, i)
		}
	}

	indices, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Optional clauses",
		Options:  options,
		Defaults: defaults,
		Help:     "Selected clauses are added to the contract and may add fields.",
	})
	if err != nil {
		return nil, err
	}

	selected := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(capsules) {
			selected = append(selected, capsules[idx].ID)
		}
	}
	return selected, nil
}

func (c *Collector) askField(ctx context.Context, field variables.Field, values map[string]string) error {
	answer, err := c.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: values[field.Name],
		Help:    field.Hint,
	})
	if err != nil {
		return err
	}
	values[field.Name] = strings.TrimSpace(answer)
	return nil
}

func (c *Collector) info(ctx context.Context, msg string) error {
	return c.driver.Info(ctx, c.theme.InfoPrefix+msg)
}

func capsuleOption(capsule model.Capsule) string {
	label := capsule.Title
	if capsule.Price != "" {
		label += " (" + capsule.Price + ")"
	}
	if capsule.Description != "" {
		label += " - " + capsule.Description
	}
	return label
}
