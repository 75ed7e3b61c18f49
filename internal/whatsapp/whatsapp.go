// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package whatsapp builds wa.me click-to-chat links for product orders
// and general contact.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"reposteria/internal/models"
)

const baseURL = "https://wa.me/"

// Digits strips everything but digits from a phone number, the form
// wa.me expects ("+54 9 11 5555-0000" → "5491155550000").
func Digits(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, number)
}

// ContactLink returns a link that opens a chat with message prefilled.
// It returns "" when number has no digits.
func ContactLink(number, message string) string {
	digits := Digits(number)
	if digits == "" {
		return ""
	}
	link := baseURL + digits
	if message = strings.TrimSpace(message); message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// OrderMessage is the prefilled text for ordering a product.
func OrderMessage(p models.Product, quantity int) string {
	if quantity < 1 {
		quantity = 1
	}
	return fmt.Sprintf("Hola! Quiero pedir %d x %s (%s).", quantity, p.Name, FormatPrice(p.Price))
}

// OrderLink returns a chat link with an order for quantity units of p.
func OrderLink(number string, p models.Product, quantity int) string {
	return ContactLink(number, OrderMessage(p, quantity))
}

// FormatPrice renders a price the way the storefront shows it: a dollar
// sign, dots as thousands separators, and cents only when non-zero
// ("$ 9.800", "$ 1.250,50").
func FormatPrice(price float64) string {
	cents := int64(price*100 + 0.5)
	whole, frac := cents/100, cents%100

	s := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if frac != 0 {
		fmt.Fprintf(&b, ",%02d", frac)
	}
	return "$ " + b.String()
}
