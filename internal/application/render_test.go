package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRender_Indicator(t *testing.T) {
	r := NewRenderer(&fakeClock{t: t0})
	cases := []struct {
		change string
		want   string
	}{
		{"1.23", IndicatorUp},
		{"0", IndicatorUp},
		{"0.0001", IndicatorUp},
		{"-0.01", IndicatorDown},
		{"-12.5", IndicatorDown},
	}
	for _, c := range cases {
		text := r.Render(quote("0.52", "0.48", c.change))
		require.Contains(t, text, c.want, "change=%s", c.change)
		other := IndicatorDown
		if c.want == IndicatorDown {
			other = IndicatorUp
		}
		require.NotContains(t, text, other, "change=%s", c.change)
	}
}

func TestRender_Layout(t *testing.T) {
	r := NewRenderer(&fakeClock{t: t0})
	text := r.Render(quote("0.52", "0.48", "1.234567"))

	want := strings.Join([]string{
		"📊 <b>XRP (Ripple)</b>",
		"USD: <code>0.52</code>",
		"EUR: <code>0.48</code>",
		"Δ24h: <code>1.23%</code> " + IndicatorUp,
		"",
		"<i>Last updated: 2025-01-01 12:00:00 UTC</i>",
	}, "\n")
	require.Equal(t, want, text)
}

func TestRender_ChangeHasTwoDecimals(t *testing.T) {
	r := NewRenderer(&fakeClock{t: t0})
	require.Contains(t, r.Render(quote("1", "1", "2")), "<code>2.00%</code>")
	require.Contains(t, r.Render(quote("1", "1", "-3.456")), "<code>-3.46%</code>")
}

func TestRender_SameQuoteDiffersOnlyInTimestamp(t *testing.T) {
	clock := &fakeClock{t: t0}
	r := NewRenderer(clock)
	q := quote("0.52", "0.48", "-1.5")

	a := r.Render(q)
	clock.Advance(time.Second)
	b := r.Render(q)
	require.NotEqual(t, a, b)

	stripTS := func(s string) string { return s[:strings.LastIndex(s, "\n")] }
	require.Equal(t, stripTS(a), stripTS(b))
	require.True(t, strings.HasSuffix(b, "2025-01-01 12:00:01 UTC</i>"))
}

func TestRender_EscapesAssetNames(t *testing.T) {
	r := NewRenderer(&fakeClock{t: t0})
	q := quote("1", "1", "1")
	q.Asset.Symbol = "A<B"
	q.Asset.Name = "Tom & Jerry"
	require.Contains(t, r.Render(q), "<b>A&lt;B (Tom &amp; Jerry)</b>")

	q.Asset.Name = ""
	require.Contains(t, r.Render(q), "<b>A&lt;B</b>")
}
