package application

import (
	"fmt"
	"html"
	"strings"

	"pricebot/internal/domain"
)

const (
	IndicatorUp   = "⬆️"
	IndicatorDown = "⬇️"

	updatedLayout = "2006-01-02 15:04:05"
)

// Renderer turns a quote into the HTML text of the live message.
type Renderer struct {
	clock Clock
}

func NewRenderer(clock Clock) *Renderer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Renderer{clock: clock}
}

func Indicator(q domain.Quote) string {
	if q.Rising() {
		return IndicatorUp
	}
	return IndicatorDown
}

func (r *Renderer) Render(q domain.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s</b>\n", title(q.Asset))
	fmt.Fprintf(&b, "USD: <code>%s</code>\n", q.PriceUSD.String())
	fmt.Fprintf(&b, "EUR: <code>%s</code>\n", q.PriceEUR.String())
	fmt.Fprintf(&b, "Δ24h: <code>%s%%</code> %s\n\n", q.Change24hPct.StringFixed(2), Indicator(q))
	fmt.Fprintf(&b, "<i>Last updated: %s UTC</i>", r.clock.Now().UTC().Format(updatedLayout))
	return b.String()
}

func title(a domain.Asset) string {
	symbol := html.EscapeString(a.Symbol)
	if a.Name == "" || a.Name == a.Symbol {
		return symbol
	}
	return fmt.Sprintf("%s (%s)", symbol, html.EscapeString(a.Name))
}
