package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/model"
)

func TestReadState(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
		want model.State
	}{
		{
			name: "flat values",
			body: "buyer_name: Ada\nprice: 900\n",
			want: model.State{Values: map[string]string{"buyer_name": "Ada", "price": "900"}},
		},
		{
			name: "state document",
			body: "values:\n  buyer_name: Ada\nselected: [1, 2]\n",
			want: model.State{Values: map[string]string{"buyer_name": "Ada"}, Selected: []int{1, 2}},
		},
		{
			name: "json values",
			body: `{"buyer_name": "Ada"}`,
			want: model.State{Values: map[string]string{"buyer_name": "Ada"}},
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatalf("write values %d: %v", i, err)
			}
			got, err := readState(path)
			if err != nil {
				t.Fatalf("read state: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got, err := readState(""); err != nil || got.Values != nil {
		t.Fatalf("expected empty state for no file, got %+v (%v)", got, err)
	}
}

func TestWriteStateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	want := model.State{Values: map[string]string{"a": "1"}, Selected: []int{3}}
	if err := writeState(path, want); err != nil {
		t.Fatalf("write state: %v", err)
	}
	got, err := readState(path)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenThemeSelector(t *testing.T) {
	selection, err := tokenThemeSelector{tokens: map[string]string{"brand": "#000"}}.Select("plain", "print")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "plain" || selection.Variant != "print" || selection.Manifest.Tokens["brand"] != "#000" {
		t.Fatalf("unexpected selection %+v", selection)
	}
}
