package chat

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// Peso renders an amount as "₱104,800", keeping centavos only when present.
func Peso(amount float64) string {
	if amount == math.Trunc(amount) {
		return "₱" + humanize.Comma(int64(amount))
	}
	return "₱" + humanize.CommafWithDigits(amount, 2)
}

// Capacity renders a wattage in kilowatts, e.g. "2 kW" or "6.5 kW".
func Capacity(watts float64) string {
	return humanize.Ftoa(watts/1000) + " kW"
}

// FormatPackage renders a full package card in markdown.
func FormatPackage(p domain.Package) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n\n", p.Name, p.Code)
	if p.Description != "" {
		b.WriteString(p.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "- **Type:** %s\n", p.Type.Label())
	if p.Wattage > 0 {
		fmt.Fprintf(&b, "- **System size:** %s\n", Capacity(p.Wattage))
	}
	if p.SuitableFor != "" {
		fmt.Fprintf(&b, "- **Suitable for:** %s\n", p.SuitableFor)
	}
	if p.CashPrice > 0 {
		fmt.Fprintf(&b, "- **Cash price:** %s\n", Peso(p.CashPrice))
	}
	if p.SRPPrice > 0 {
		fmt.Fprintf(&b, "- **SRP:** %s\n", Peso(p.SRPPrice))
	}
	if p.FinancingPrice > 0 {
		fmt.Fprintf(&b, "- **Financing price:** %s\n", Peso(p.FinancingPrice))
	}
	b.WriteString("\nWould you like to schedule a free site inspection or get a detailed quotation for this package?")
	return b.String()
}

// FormatCatalog renders one line per package for use in prompts.
func FormatCatalog(pkgs []domain.Package) string {
	var b strings.Builder
	for _, p := range pkgs {
		fmt.Fprintf(&b, "- %s: %s, %s, %s", p.Code, p.Name, p.Type.Label(), Capacity(p.Wattage))
		if p.CashPrice > 0 {
			fmt.Fprintf(&b, ", cash %s", Peso(p.CashPrice))
		}
		if p.SRPPrice > 0 {
			fmt.Fprintf(&b, ", SRP %s", Peso(p.SRPPrice))
		}
		if p.FinancingPrice > 0 {
			fmt.Fprintf(&b, ", financing %s", Peso(p.FinancingPrice))
		}
		if p.SuitableFor != "" {
			fmt.Fprintf(&b, " (suitable for %s)", p.SuitableFor)
		}
		b.WriteString("\n")
	}
	return b.String()
}
