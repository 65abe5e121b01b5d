package text

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/render"
	"github.com/goliatone/go-contractgen/pkg/testsupport"
)

func TestRendererMatchesGolden(t *testing.T) {
	tpl := testsupport.MustLoadTemplate(t, filepath.Join("..", "..", "..", "bundles", "compraventa.yaml"))
	doc := render.Document{
		Template: tpl,
		State: model.State{
			Values: map[string]string{
				"vendedor_nombre":  "Ana Ruiz",
				"comprador_nombre": "Luis Gómez",
				"bien_descripcion": "una bicicleta",
				"precio":           "$500",
				"garantia_meses":   "6",
				"penalidad_monto":  "$50",
			},
			Selected: []int{1},
		},
	}

	out, err := New().Render(context.Background(), doc, render.RenderOptions{Ordinals: render.SpanishOrdinals})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "compraventa.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, out) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestTidy(t *testing.T) {
	got := tidy("\n\nA  \n\n\n\nB\t\n\n")
	if got != "A\n\nB\n" {
		t.Fatalf("tidy = %q", got)
	}
}
