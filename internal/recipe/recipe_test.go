// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package recipe

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank lines only", input: "\n  \n\t\n", want: nil},
		{
			name:  "plain lines",
			input: "200 g de chocolate\n3 huevos",
			want:  []string{"200 g de chocolate", "3 huevos"},
		},
		{
			name:  "dash bullets and windows newlines",
			input: "- Templar el chocolate.\r\n- Encamisar el molde.",
			want:  []string{"Templar el chocolate.", "Encamisar el molde."},
		},
		{
			name:  "numbered steps",
			input: "1. Fundir.\n2) Batir.\n10. Hornear.",
			want:  []string{"Fundir.", "Batir.", "Hornear."},
		},
		{
			name:  "star and dot bullets with padding",
			input: "  * sal  \n\n  • azúcar",
			want:  []string{"sal", "azúcar"},
		},
		{
			name:  "quantity is not a list marker",
			input: "3 huevos\n250 ml de crema",
			want:  []string{"3 huevos", "250 ml de crema"},
		},
		{
			name:  "decimal quantity is kept",
			input: "1.5 kg de harina",
			want:  []string{"1.5 kg de harina"},
		},
		{name: "marker only", input: "-\n1.", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}
