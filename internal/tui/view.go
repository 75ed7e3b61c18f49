// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reposteria/internal/catalog"
	"reposteria/internal/whatsapp"
)

// maxListed caps the products drawn in the result area.
const maxListed = 20

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B45309"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#92400E"))
	labelStyle  = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("#78716C"))
	focusStyle  = lipgloss.NewStyle().Width(12).Bold(true).Foreground(lipgloss.Color("#B45309"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8A29E"))
	nameStyle   = lipgloss.NewStyle().Width(36)
	priceStyle  = lipgloss.NewStyle().Width(14).Align(lipgloss.Right)
	stockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	chipStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FCD34D"))
	boxStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color("#E7E5E4"))
)

var priceModeLabels = map[catalog.PriceMode]string{
	catalog.PriceModeNone: "Sin filtro",
	catalog.PriceModeMin:  "Desde",
	catalog.PriceModeMax:  "Hasta",
}

// View renders the filter controls, the result area and the share link.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Productos"))
	b.WriteString("\n\n")
	b.WriteString(m.filtersView())
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.resultsView()))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Compartir: " + m.ShareURL()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab/↑↓ campo · ←→ cambiar · espacio stock · ctrl+r limpiar · esc salir"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) filtersView() string {
	category := "Todas"
	if m.category > 0 {
		c := m.catalog.Categories()[m.category-1]
		category = fmt.Sprintf("%s (%d)", c.Name, c.ProductCount)
	}
	stock := "[ ]"
	if m.inStock {
		stock = "[x]"
	}

	rows := []struct {
		f     field
		label string
		value string
	}{
		{fieldQuery, "Buscar", m.query.View()},
		{fieldCategory, "Categoría", "‹ " + category + " ›"},
		{fieldMode, "Precio", "‹ " + priceModeLabels[priceModes[m.mode]] + " ›"},
		{fieldPrice, "Monto", m.price.View()},
		{fieldStock, "Solo stock", stock},
	}

	var b strings.Builder
	for _, r := range rows {
		style := labelStyle
		if r.f == m.focus {
			style = focusStyle
		}
		b.WriteString(style.Render(r.label))
		b.WriteString(r.value)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) resultsView() string {
	v := m.view
	var b strings.Builder

	switch v.State {
	case catalog.ViewLoading:
		b.WriteString(m.spinner.View() + " Buscando...")

	case catalog.ViewEmpty:
		b.WriteString(v.EmptyMessage())
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Probá con otra categoría:"))
		b.WriteString("\n")
		chips := make([]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			chips = append(chips, chipStyle.Render(c.Name))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("ctrl+r limpia los filtros"))

	case catalog.ViewResults:
		header := v.CountText
		if v.CategoryName != "" {
			header += " en " + v.CategoryName
		}
		b.WriteString(accentStyle.Render(header))
		b.WriteString("\n")
		for i, p := range v.Products {
			if i == maxListed {
				b.WriteString(mutedStyle.Render(fmt.Sprintf("... y %d más", len(v.Products)-maxListed)))
				break
			}
			b.WriteString("\n")
			b.WriteString(nameStyle.Render(p.Name))
			b.WriteString(priceStyle.Render(whatsapp.FormatPrice(p.Price)))
			if !p.Available {
				b.WriteString(" " + stockStyle.Render("sin stock"))
			}
		}

	default:
		b.WriteString("Explorá por categoría")
		b.WriteString("\n")
		for _, c := range v.Categories {
			b.WriteString("\n")
			b.WriteString(nameStyle.Render(c.Name))
			b.WriteString(mutedStyle.Render(productCount(c.ProductCount)))
		}
	}
	return b.String()
}

func productCount(n int) string {
	if n == 1 {
		return "1 producto"
	}
	return fmt.Sprintf("%d productos", n)
}
