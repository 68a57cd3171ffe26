package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/gdgdash/internal/core"
)

// Chart keys of the analytics page.
const (
	ChartYear      = "year"
	ChartEducation = "education"
	ChartDomain    = "domain"
	ChartGender    = "gender"
)

// ChartOption is one entry of the visualization selector.
type ChartOption struct {
	Key   string
	Label string
}

// Charts lists the visualizations in display order.
var Charts = []ChartOption{
	{ChartYear, "Year-wise Distribution"},
	{ChartEducation, "Education Distribution"},
	{ChartDomain, "Email Domain Analysis"},
	{ChartGender, "Gender Distribution"},
}

// Brand colors of the year-wise charts.
const (
	colorMembers    = "#e5511b"
	colorNonMembers = "#4285f4"
	colorNeutral    = "#34a853"
)

// AnalyticsParams holds the data for the analytics dashboard.
type AnalyticsParams struct {
	Report *core.AnalyticsReport
	Form   FilterFormParams
	Chart  string
}

// AnalyticsPage renders the metrics row and the selected chart.
func AnalyticsPage(sidebar SidebarParams, p AnalyticsParams) templ.Component {
	return Layout("Analytics Dashboard", sidebar, component(func(ctx context.Context, b *builder) {
		b.raw(`<h1>Analytics Dashboard</h1>`)
		b.render(ctx, FilterForm(p.Form))
		b.raw(`<div`)
		b.attr("id", p.Form.Target)
		b.raw(`>`)
		b.render(ctx, AnalyticsPartial(p))
		b.raw(`</div>`)
	}))
}

// AnalyticsPartial renders everything below the filter form.
func AnalyticsPartial(p AnalyticsParams) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		r := p.Report
		b.raw(`<div class="metrics">`)
		metric(b, "Total Members", r.Summary.Total)
		metric(b, "Undergraduates", r.Summary.Undergraduates)
		metric(b, "Graduates", r.Summary.Graduates)
		metric(b, "Active Members", r.Summary.ActiveMembers)
		b.raw(`</div>`)

		b.raw(`<nav class="charts">`)
		for _, c := range Charts {
			q := p.Form.Filter.Query()
			q.Set("chart", c.Key)
			b.raw(`<a`)
			b.href(withQuery("/analytics", q))
			if c.Key == p.Chart {
				b.raw(` class="active"`)
			}
			b.raw(`>`)
			b.text(c.Label)
			b.raw(`</a>`)
		}
		b.raw(`</nav>`)

		switch p.Chart {
		case ChartEducation:
			b.render(ctx, BarChart("Education Level Distribution", colorNeutral, r.Education))
		case ChartDomain:
			b.render(ctx, BarChart("Top Email Domains", colorNonMembers, r.Domains))
		case ChartGender:
			if !r.HasGender {
				b.raw(`<p class="info">Gender data is not available</p>`)
				break
			}
			b.render(ctx, BarChart("Gender Distribution", colorMembers, r.Gender))
		default:
			b.render(ctx, YearCharts(r.Years))
		}
	})
}

func metric(b *builder, label string, value int) {
	b.raw(`<div class="metric"><span class="label">`)
	b.text(label)
	b.raw(`</span><span class="value">`)
	b.textf("%d", value)
	b.raw(`</span></div>`)
}

// YearCharts renders the member and non-member distributions side by side
// followed by the membership rate of each year.
func YearCharts(y core.MembershipBreakdown) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<div class="columns"><div>`)
		b.render(ctx, yearChart("GDG Members Distribution by Year", colorMembers, y.Members))
		b.raw(`<p>Membership Percentage by Year:</p><ul>`)
		for _, s := range y.MemberShare {
			b.raw(`<li>`)
			b.textf("%s: %.1f%% (%d members)", s.Year, s.Percent, s.Count)
			b.raw(`</li>`)
		}
		b.raw(`</ul></div><div>`)
		b.render(ctx, yearChart("Non-Members Distribution by Year", colorNonMembers, y.NonMembers))
		b.raw(`<p>Non-Member Percentage by Year:</p><ul>`)
		for _, s := range y.NonMemberShare {
			b.raw(`<li>`)
			b.textf("%s: %.1f%% (%d non-members)", s.Year, s.Percent, s.Count)
			b.raw(`</li>`)
		}
		b.raw(`</ul></div></div>`)

		b.raw(`<h2>Year-wise Membership Rate</h2><ul class="rates">`)
		for _, rate := range y.Rates {
			b.raw(`<li><strong>`)
			b.text(string(rate.Year))
			b.raw(`</strong>: `)
			b.textf("%.1f%% membership rate (%d members out of %d students)", rate.Rate, rate.Members, rate.Total)
			b.raw(`</li>`)
		}
		b.raw(`</ul>`)
	})
}

func yearChart(title, color string, counts []core.YearCount) templ.Component {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	bars := make([]core.Bucket, len(counts))
	for i, c := range counts {
		p, _ := core.Percent(c.Count, total)
		bars[i] = core.Bucket{Label: string(c.Year), Count: c.Count, Percent: p}
	}
	return BarChart(title, color, bars)
}

// BarChart renders buckets as horizontal bars scaled to the largest count.
func BarChart(title, color string, buckets []core.Bucket) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<figure class="chart"><figcaption>`)
		b.text(title)
		b.raw(`</figcaption>`)
		if len(buckets) == 0 {
			b.raw(`<p class="empty">No data for the current filters.</p></figure>`)
			return
		}

		max := 0
		for _, bk := range buckets {
			if bk.Count > max {
				max = bk.Count
			}
		}
		for _, bk := range buckets {
			width, _ := core.Percent(bk.Count, max)
			label := bk.Label
			if label == "" {
				label = "(no domain)"
			}
			b.raw(`<div class="bar"><span class="bar-label">`)
			b.text(label)
			b.raw(`</span><span class="bar-track"><span class="bar-fill"`)
			b.attr("style", "width: "+formatWidth(width)+"; background: "+color)
			b.raw(`></span></span><span class="bar-value">`)
			b.textf("%d (%.1f%%)", bk.Count, bk.Percent)
			b.raw(`</span></div>`)
		}
		b.raw(`</figure>`)
	})
}

func formatWidth(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}
