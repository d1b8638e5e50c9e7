package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cabfare/backend/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	summaryStyle = lipgloss.NewStyle().Italic(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	rule         = strings.Repeat("=", 70)
	thinRule     = strings.Repeat("-", 70)
)

func renderBanner(w io.Writer) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, titleStyle.Render("🚖 CABFARE - AI-Powered Ride Comparison"))
	fmt.Fprintln(w, rule)
}

// renderComparison prints a comparison the way the CLI presents it
func renderComparison(w io.Writer, result *domain.ComparisonResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, sectionStyle.Render("📊 COMPARISON RESULTS"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n💡 %s\n\n", summaryStyle.Render(result.Summary))

	recs := result.Recommendations
	if bv := recs.BestValue; bv != nil {
		fmt.Fprintf(w, "💰 Best Value: %s %s - %s\n", bv.Service, bv.RideType, bv.EstimateDisplay)
	}
	if fast := recs.Fastest; fast != nil {
		fmt.Fprintf(w, "⚡ Fastest: %s %s - %.0f min\n", fast.Service, fast.RideType, fast.DurationMinutes)
	}
	if lux := recs.Luxury; lux != nil {
		fmt.Fprintf(w, "✨ Luxury: %s %s - %s\n", lux.Service, lux.RideType, lux.EstimateDisplay)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, thinRule)
	renderOptions(w, "UBER OPTIONS:", result.Uber)
	fmt.Fprintln(w)
	renderOptions(w, "LYFT OPTIONS:", result.Lyft)
}

func renderOptions(w io.Writer, title string, options []domain.RideOption) {
	fmt.Fprintln(w, sectionStyle.Render(title))
	if len(options) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no options available"))
		return
	}
	for _, opt := range options {
		fmt.Fprintf(w, "  • %s: %s (%.0f min, %.1f mi) %s\n",
			opt.RideType, opt.EstimateDisplay, opt.DurationMinutes, opt.DistanceMiles, surgeLabel(opt.Surge))
	}
}

func surgeLabel(s domain.Surge) string {
	if !s.IsSurging() {
		return mutedStyle.Render("no surge")
	}
	return "surge " + s.String()
}

func renderETAs(w io.Writer, etas []domain.PickupETA) {
	fmt.Fprintln(w, sectionStyle.Render("⏱  PICKUP ETAs"))
	if len(etas) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no estimates available"))
		return
	}
	for _, eta := range etas {
		fmt.Fprintf(w, "  • %s %s: %.0f min\n", eta.Service, eta.RideType, eta.ETAMinutes)
	}
}
