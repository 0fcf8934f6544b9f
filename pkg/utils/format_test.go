package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "a &amp;&amp; b", EscapeHTML("a && b"))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", EscapeHTML("<b>bold</b>"))
	assert.Equal(t, "say &quot;hi&quot;", EscapeHTML(`say "hi"`))
	assert.Equal(t, "plain text", EscapeHTML("plain text"))
}

func TestRenderTemplate(t *testing.T) {
	out := RenderTemplate("Olá {profile_name}, seu plano é {plan_name}", map[string]string{
		"profile_name": "<Maria>",
		"plan_name":    "VIP Gold",
	})
	assert.Equal(t, "Olá &lt;Maria&gt;, seu plano é VIP Gold", out)
}

func TestRenderTemplateKeepsUnknownTokens(t *testing.T) {
	out := RenderTemplate("Oi {profile_name}, toque em {payment_pointer}", map[string]string{
		"profile_name": "Ana",
	})
	assert.Equal(t, "Oi Ana, toque em {payment_pointer}", out)
}

func TestRenderTemplateRawPreservesMarkup(t *testing.T) {
	out := RenderTemplateRaw("Pague: {payment_pointer}", map[string]string{
		"payment_pointer": "<code>000201abc</code>",
	})
	assert.Equal(t, "Pague: <code>000201abc</code>", out)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "R$ 19,90", FormatPrice(19.9))
	assert.Equal(t, "R$ 0,50", FormatPrice(0.5))
	assert.Equal(t, "R$ 1250,00", FormatPrice(1250))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "Vitalício", FormatDuration("LIFETIME", 0))
	assert.Equal(t, "Mensal", FormatDuration("MONTHLY", 30))
	assert.Equal(t, "Semanal", FormatDuration("WEEKLY", 7))
	assert.Equal(t, "Diário", FormatDuration("DAILY", 1))
	assert.Equal(t, "45 dias", FormatDuration("CUSTOM", 45))
}

func TestAmountInCents(t *testing.T) {
	assert.Equal(t, int64(1990), AmountInCents(19.9))
	assert.Equal(t, int64(1), AmountInCents(0.01))
	assert.Equal(t, int64(0), AmountInCents(-5))
	// 29.99 is not exactly representable; rounding must still land on 2999.
	assert.Equal(t, int64(2999), AmountInCents(29.99))
}
