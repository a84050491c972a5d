// util/json_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"strings"
	"testing"
)

func TestFindDuplicateJSONKeys(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected []DuplicateJSONKey
	}{
		{
			name:     "no duplicates",
			json:     `{"speed_knots": 107, "wind_speed_knots": 20}`,
			expected: nil,
		},
		{
			name: "duplicate at root",
			json: `{"speed_knots": 107, "flipped": true, "speed_knots": 90}`,
			expected: []DuplicateJSONKey{
				{Path: "", Key: "speed_knots"},
			},
		},
		{
			name: "duplicate in nested object",
			json: `{"page": {"width": 1, "width": 2}}`,
			expected: []DuplicateJSONKey{
				{Path: "page", Key: "width"},
			},
		},
		{
			name:     "same key in sibling objects",
			json:     `{"items": [{"x": 1}, {"x": 2}]}`,
			expected: nil,
		},
		{
			name: "duplicate inside array element",
			json: `{"items": [{"x": 1, "x": 2}]}`,
			expected: []DuplicateJSONKey{
				{Path: "items", Key: "x"},
			},
		},
		{
			name:     "truncated input",
			json:     `{"a": 1, "b": `,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindDuplicateJSONKeys([]byte(tt.json))

			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d duplicates, got %d: %v", len(tt.expected), len(result), result)
			}
			for i, exp := range tt.expected {
				if result[i] != exp {
					t.Errorf("duplicate %d: expected %+v, got %+v", i, exp, result[i])
				}
			}
		})
	}
}

func TestUnmarshalJSONBytes(t *testing.T) {
	type cfg struct {
		Speed float32 `json:"speed_knots"`
	}

	var c cfg
	if err := UnmarshalJSONBytes([]byte(`{"speed_knots": 95}`), &c); err != nil || c.Speed != 95 {
		t.Errorf("got %+v, %v", c, err)
	}

	for _, tc := range []struct {
		json, msg string
	}{
		{"{\n  \"speed_knots\": \"fast\"\n}", "line 2"},
		{"{\n  \"speed_knots\": 9,,\n}", "line 2"},
		{`{"speedknots": 1}`, "unknown field"},
	} {
		err := UnmarshalJSONBytes([]byte(tc.json), &c)
		if err == nil || !strings.Contains(err.Error(), tc.msg) {
			t.Errorf("%s: expected error containing %q, got %v", tc.json, tc.msg, err)
		}
	}
}
