package utils

import (
	"fmt"
	"strings"
)

// EscapeHTML neutralizes user-supplied text before it is embedded in an
// HTML-parse-mode Telegram message. Operator-authored template markup is
// never passed through here.
func EscapeHTML(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, "\"", "&quot;")
	return text
}

// RenderTemplate substitutes every {key} token with the escaped value from
// vars. Unknown tokens stay verbatim so a typo in an operator template never
// breaks the funnel.
func RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{"+key+"}", EscapeHTML(value))
	}
	return result
}

// RenderTemplateRaw is RenderTemplate without escaping, for values that must
// stay live markup (the PIX payment pointer wrapped in <code>/<blockquote>).
func RenderTemplateRaw(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}
	return result
}

// FormatPrice renders a BRL amount: two decimals, comma separator.
func FormatPrice(price float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", price), ".", ",", 1)
}

// FormatDuration returns the human label for a plan duration.
func FormatDuration(durationType string, durationDays int) string {
	switch durationType {
	case "LIFETIME":
		return "Vitalício"
	case "MONTHLY":
		return "Mensal"
	case "WEEKLY":
		return "Semanal"
	case "DAILY":
		return "Diário"
	}
	return fmt.Sprintf("%d dias", durationDays)
}

// AmountInCents converts a BRL amount to integer cents. Only gateway
// adapters deal in minor units.
func AmountInCents(amount float64) int64 {
	if amount < 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}
