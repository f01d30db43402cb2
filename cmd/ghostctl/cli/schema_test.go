// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"
	"time"
)

func TestParamsSchema_BasicTypes(t *testing.T) {
	type params struct {
		Text    string        `json:"text" flag:"text" desc:"text to send" required:"true"`
		Plain   bool          `json:"plain" flag:"plain" desc:"strip styling"`
		Rows    int           `json:"rows" flag:"rows" desc:"row count" default:"24"`
		X       float64       `json:"x" flag:"x" desc:"cell column"`
		Timeout time.Duration `json:"timeout" flag:"timeout" desc:"wait timeout" default:"30s"`
		Keys    []string      `json:"keys" flag:"keys" desc:"key list"`
	}

	schema, err := ParamsSchema(&params{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("Type = %q", schema.Type)
	}

	tests := []struct {
		name       string
		wantType   string
		wantFormat string
	}{
		{"text", "string", ""},
		{"plain", "boolean", ""},
		{"rows", "integer", ""},
		{"x", "number", ""},
		{"timeout", "string", "duration"},
		{"keys", "array", ""},
	}
	for _, tt := range tests {
		prop := schema.Properties[tt.name]
		if prop == nil {
			t.Errorf("property %q missing", tt.name)
			continue
		}
		if prop.Type != tt.wantType {
			t.Errorf("property %q type = %q, want %q", tt.name, prop.Type, tt.wantType)
		}
		if prop.Format != tt.wantFormat {
			t.Errorf("property %q format = %q, want %q", tt.name, prop.Format, tt.wantFormat)
		}
	}

	if prop := schema.Properties["text"]; prop.Description != "text to send" {
		t.Errorf("text description = %q", prop.Description)
	}
	if prop := schema.Properties["rows"]; prop.Default != 24 {
		t.Errorf("rows default = %v (%T), want 24", prop.Default, prop.Default)
	}
	if prop := schema.Properties["timeout"]; prop.Default != "30s" {
		t.Errorf("timeout default = %v", prop.Default)
	}

	if len(schema.Required) != 1 || schema.Required[0] != "text" {
		t.Errorf("Required = %v, want [text]", schema.Required)
	}
}

func TestParamsSchema_ExcludesFlagBinderAndUntagged(t *testing.T) {
	type params struct {
		TargetConfig
		JSONOutput

		Text   string `json:"text" flag:"text"`
		NoJSON string `flag:"no-json-tag"`
	}

	schema, err := ParamsSchema(&params{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}

	if _, ok := schema.Properties["text"]; !ok {
		t.Error("tagged property missing")
	}
	// TargetConfig is a FlagBinder: connection flags are managed by
	// the server, not exposed to agents.
	for _, excluded := range []string{"socket", "surface", "pick", "Socket", "Surface"} {
		if _, ok := schema.Properties[excluded]; ok {
			t.Errorf("FlagBinder property %q leaked into schema", excluded)
		}
	}
	if _, ok := schema.Properties["no-json-tag"]; ok {
		t.Error("field without json tag leaked into schema")
	}
}

func TestParamsSchema_JSONOutputExcluded(t *testing.T) {
	type params struct {
		JSONOutput
		Text string `json:"text"`
	}

	schema, err := ParamsSchema(&params{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	// JSONOutput's field is tagged json:"-".
	if len(schema.Properties) != 1 {
		t.Errorf("Properties = %v, want only text", schema.Properties)
	}
}

func TestOutputSchema_SliceOfStructs(t *testing.T) {
	type surfaceRow struct {
		ID      string `json:"id" desc:"surface ID"`
		Title   string `json:"title"`
		Focused bool   `json:"focused"`
	}

	schema, err := OutputSchema(&[]surfaceRow{})
	if err != nil {
		t.Fatalf("OutputSchema: %v", err)
	}
	if schema.Type != "array" {
		t.Fatalf("Type = %q, want array", schema.Type)
	}
	if schema.Items == nil || schema.Items.Type != "object" {
		t.Fatalf("Items = %+v, want object", schema.Items)
	}
	if prop := schema.Items.Properties["id"]; prop == nil || prop.Description != "surface ID" {
		t.Errorf("items.id = %+v", prop)
	}
	if prop := schema.Items.Properties["focused"]; prop == nil || prop.Type != "boolean" {
		t.Errorf("items.focused = %+v", prop)
	}
}

func TestOutputSchema_SpecialTypes(t *testing.T) {
	type out struct {
		When time.Time      `json:"when"`
		Took time.Duration  `json:"took"`
		Blob []byte         `json:"blob"`
		Meta map[string]int `json:"meta"`
		Any  any            `json:"any"`
	}

	schema, err := OutputSchema(&out{})
	if err != nil {
		t.Fatalf("OutputSchema: %v", err)
	}

	if p := schema.Properties["when"]; p.Type != "string" || p.Format != "date-time" {
		t.Errorf("when = %+v", p)
	}
	if p := schema.Properties["took"]; p.Type != "string" || p.Format != "duration" {
		t.Errorf("took = %+v", p)
	}
	if p := schema.Properties["blob"]; p.Type != "string" || p.Format != "byte" {
		t.Errorf("blob = %+v", p)
	}
	if p := schema.Properties["meta"]; p.Type != "object" || p.AdditionalProperties == nil || p.AdditionalProperties.Type != "integer" {
		t.Errorf("meta = %+v", p)
	}
	if p := schema.Properties["any"]; p.Type != "" {
		t.Errorf("any = %+v, want unconstrained", p)
	}
}

func TestParamsSchema_RejectsNonStruct(t *testing.T) {
	if _, err := ParamsSchema(42); err == nil {
		t.Error("ParamsSchema(42) succeeded")
	}
}
