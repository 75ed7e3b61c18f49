// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"reposteria/internal/models"
)

func TestDigits(t *testing.T) {
	require.Equal(t, "5491155550000", Digits("+54 9 11 5555-0000"))
	require.Equal(t, "", Digits("n/a"))
	require.Equal(t, "12", Digits("(1)٣2")) // non-ASCII digits are dropped
}

func TestContactLink(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		message string
		want    string
	}{
		{name: "no number", number: "", message: "hola", want: ""},
		{name: "no message", number: "+54 11 5555", want: "https://wa.me/54115555"},
		{name: "blank message", number: "5411", message: "   ", want: "https://wa.me/5411"},
		{name: "encoded message", number: "5411", message: "Hola! ¿Tienen moldes?", want: "https://wa.me/5411?text=Hola%21+%C2%BFTienen+moldes%3F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ContactLink(tt.number, tt.message))
		})
	}
}

func TestOrderLink(t *testing.T) {
	p := models.Product{Name: "Molde Desmontable 24 cm", Price: 7600}

	link := OrderLink("+54 9 11 5555-0000", p, 2)
	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "wa.me", u.Host)
	require.Equal(t, "/5491155550000", u.Path)
	require.Equal(t, "Hola! Quiero pedir 2 x Molde Desmontable 24 cm ($ 7.600).", u.Query().Get("text"))

	require.Empty(t, OrderLink("", p, 1))
	require.Contains(t, OrderMessage(p, 0), "pedir 1 x")
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$ 0"},
		{750, "$ 750"},
		{9800, "$ 9.800"},
		{1250.5, "$ 1.250,50"},
		{1234567.89, "$ 1.234.567,89"},
		{99.999, "$ 100"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatPrice(tt.in), "input %v", tt.in)
	}
}
