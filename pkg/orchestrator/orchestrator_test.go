package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/bundle"
	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/render"
	"github.com/goliatone/go-contractgen/pkg/variables"
)

func paymentTemplate() model.Template {
	return model.Template{
		ID:   "payment",
		Name: "Payment",
		Text: "NUMERACION: Pago\n{{ monto : money }} [CAPSULA: Extra]{{ extra }}[/CAPSULA]",
		Capsules: []model.Capsule{
			{ID: 7, Slug: "extra", Title: "Extra"},
		},
		Numbering: []model.NumberingDirective{
			{Order: 1, Title: "Pago"},
		},
	}
}

func newCatalog(t *testing.T, templates ...model.Template) *bundle.Catalog {
	t.Helper()
	catalog := bundle.NewCatalog()
	for _, tpl := range templates {
		if err := catalog.Add(tpl); err != nil {
			t.Fatalf("add template: %v", err)
		}
	}
	return catalog
}

type captureRenderer struct {
	doc     render.Document
	options render.RenderOptions
	calls   int
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	c.calls++
	c.doc = doc
	c.options = options
	return []byte("captured:" + doc.Template.ID), nil
}

func TestFieldsFollowCapsuleSelection(t *testing.T) {
	orch := New(WithCatalog(newCatalog(t, paymentTemplate())))

	fields, err := orch.Fields(context.Background(), Request{TemplateID: "payment"})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	want := []variables.Field{{Name: "monto", Label: "Monto", Hint: "money"}}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	fields, err = orch.Fields(context.Background(), Request{
		TemplateID: "payment",
		State:      model.State{Selected: []int{7}},
	})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 2 || fields[1].Name != "extra" {
		t.Fatalf("expected capsule field once selected, got %+v", fields)
	}
}

func TestPreviewRendersHTMLAndCaches(t *testing.T) {
	orch := New(WithCatalog(newCatalog(t, paymentTemplate())), WithOrdinals(render.SpanishOrdinals))

	req := Request{TemplateID: "payment", State: model.State{Values: map[string]string{"monto": "1000"}}}
	got, err := orch.Preview(context.Background(), req)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}

	if !strings.Contains(got.Text, `<strong class="cg-clause" data-clause="1">PRIMERA: Pago</strong>`) {
		t.Fatalf("expected spanish clause label, got:\n%s", got.Text)
	}
	if !strings.Contains(got.Text, `data-variable="monto">1000</span>`) {
		t.Fatalf("expected filled variable, got:\n%s", got.Text)
	}
	if strings.Contains(got.Text, "extra") {
		t.Fatalf("unselected capsule leaked into preview:\n%s", got.Text)
	}
	if diff := cmp.Diff([]string{"monto"}, got.Variables); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
	if got.Completion != 1 || len(got.Missing) != 0 {
		t.Fatalf("expected complete preview, got %v missing %v", got.Completion, got.Missing)
	}
	if diff := cmp.Diff(map[int]string{1: "PRIMERA"}, got.Ordinals); diff != "" {
		t.Fatalf("ordinals mismatch (-want +got):\n%s", diff)
	}

	again, err := orch.Preview(context.Background(), req)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("cached preview differs (-want +got):\n%s", diff)
	}
	if orch.memo.Len() != 1 {
		t.Fatalf("expected one cached preview, got %d", orch.memo.Len())
	}

	req.State.Values = map[string]string{}
	empty, err := orch.Preview(context.Background(), req)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if empty.Completion != 0 || orch.memo.Len() != 2 {
		t.Fatalf("expected a fresh render for new values, completion %v cached %d", empty.Completion, orch.memo.Len())
	}
}

func TestGeneratePassesDocumentAndOptions(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(
		WithCatalog(newCatalog(t, paymentTemplate())),
		WithRegistry(render.NewRegistry(renderer)),
		WithDefaultRenderer(renderer.Name()),
		WithAllowMarkup(true),
	)

	state := model.State{Values: map[string]string{"monto": "5"}, Selected: []int{7}}
	out, err := orch.Generate(context.Background(), Request{TemplateID: "payment", State: state, Fragment: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "captured:payment" {
		t.Fatalf("unexpected output %q", out)
	}
	if diff := cmp.Diff(state, renderer.doc.State); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if !renderer.options.AllowMarkup || !renderer.options.Fragment {
		t.Fatalf("options not forwarded: %+v", renderer.options)
	}
	if renderer.options.Ordinals.Label(1) != "FIRST" {
		t.Fatalf("expected default english ordinals")
	}
}

func TestGenerateDefaultRenderers(t *testing.T) {
	orch := New(WithCatalog(newCatalog(t, paymentTemplate())))

	for _, name := range []string{"html", "text", "terminal"} {
		if !orch.Registry().Has(name) {
			t.Fatalf("expected default renderer %q", name)
		}
	}

	out, err := orch.Generate(context.Background(), Request{TemplateID: "payment", Renderer: "text"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "FIRST: Pago") || !strings.Contains(string(out), "[Monto]") {
		t.Fatalf("unexpected text output:\n%s", out)
	}

	page, err := orch.Generate(context.Background(), Request{TemplateID: "payment"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(page), "<!DOCTYPE html>") {
		t.Fatalf("expected html page by default, got:\n%s", page)
	}

	contentType, err := orch.ContentType("")
	if err != nil || !strings.HasPrefix(contentType, "text/html") {
		t.Fatalf("unexpected default content type %q (%v)", contentType, err)
	}
}

func TestGenerateUsesConfiguredLabeler(t *testing.T) {
	orch := New(
		WithCatalog(newCatalog(t, paymentTemplate())),
		WithLabeler(func(name string) string { return "campo " + name }),
	)

	out, err := orch.Generate(context.Background(), Request{TemplateID: "payment", Renderer: "text"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "[campo monto]") {
		t.Fatalf("expected custom label in text output:\n%s", out)
	}

	page, err := orch.Generate(context.Background(), Request{TemplateID: "payment", Fragment: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(page), "campo monto") || strings.Contains(string(page), "Monto") {
		t.Fatalf("expected custom label in html output:\n%s", page)
	}
}

func TestOrchestratorErrors(t *testing.T) {
	orch := New(WithCatalog(newCatalog(t, paymentTemplate())))
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "unknown template", req: Request{TemplateID: "ghost"}, want: ErrTemplateNotFound},
		{name: "missing template id", req: Request{}, want: ErrTemplateNotFound},
		{name: "unknown renderer", req: Request{TemplateID: "payment", Renderer: "pdf"}, want: render.ErrRendererNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orch.Generate(ctx, tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Preview(cancelled, Request{TemplateID: "payment"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := New().Fields(ctx, Request{TemplateID: "payment"}); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound without catalog, got %v", err)
	}
}
