// Package view turns a dashboard selection into the sections, charts and
// lists a client renders.
package view

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/rrdash/internal/domain/aggregate"
	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/internal/domain/model"
	"github.com/okian/rrdash/internal/domain/types"
)

// Chart IDs.
const (
	ChartGeo       = "geo"
	ChartCompanies = "companies"
	ChartReceivers = "receivers"
	ChartTrend     = "trend"
)

// Section IDs.
const (
	SectionSummary      = "summary"
	SectionDistribution = "distribution"
	SectionCompany      = "company"
	SectionInsights     = "insights"
)

const (
	accentColor   = "#8A2BE2"
	receiverColor = "#FA1004"
	trendColor    = "#04FCF5"
	mapLandColor  = "#A7FC83"
)

// pastel palette for pie slices
var pieColors = []string{
	"#FD3216", "#00FE35", "#6A76FC", "#FED4C4", "#FE00CE",
	"#0DF9FF", "#F6F926", "#FF9616", "#479B55", "#EEA6FB",
}

// Binder computes Displays from a dataset. It holds no per-request state and
// is safe for concurrent use.
type Binder struct {
	ds            *dataset.Dataset
	topCompanies  int
	topReceivers  int
	insightLimit  int
	awardFeedType string
	dateLayouts   []string
	printer       *message.Printer
}

// Option configures a Binder.
type Option func(*Binder)

// WithTopCompanies sets how many companies the points pie shows.
func WithTopCompanies(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.topCompanies = n
		}
	}
}

// WithTopReceivers sets how many receivers the company bar chart shows.
func WithTopReceivers(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.topReceivers = n
		}
	}
}

// WithInsightLimit sets the length of insight lists.
func WithInsightLimit(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.insightLimit = n
		}
	}
}

// WithAwardFeedType sets the Feed_type value counted as an award.
func WithAwardFeedType(s string) Option {
	return func(b *Binder) {
		if s != "" {
			b.awardFeedType = s
		}
	}
}

// WithDateLayout sets the layouts tried, in order, for the selection date.
func WithDateLayout(layouts ...string) Option {
	return func(b *Binder) {
		if len(layouts) > 0 {
			b.dateLayouts = slices.Clone(layouts)
		}
	}
}

// New returns a Binder over ds.
func New(ds *dataset.Dataset, opts ...Option) *Binder {
	if ds == nil {
		ds = dataset.New(nil)
	}
	b := &Binder{
		ds:            ds,
		topCompanies:  5,
		topReceivers:  5,
		insightLimit:  3,
		awardFeedType: "Award",
		dateLayouts:   []string{model.DateLayout, "02/01/2006"},
		printer:       message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dataset returns the dataset the binder reads.
func (b *Binder) Dataset() *dataset.Dataset {
	return b.ds
}

// Render builds the Display for sel. A date restricts every aggregate to
// that day; a date that cannot be parsed or has no rows yields a notice and
// no sections.
func (b *Binder) Render(sel Selection) Display {
	sel.Mode = ParseMode(string(sel.Mode))
	d := Display{Mode: sel.Mode, Title: "R&R Dashboard", Sections: []Section{}}

	scope := b.ds
	if sel.Date != "" {
		day, ok := b.parseDate(sel.Date)
		if ok {
			scope = b.ds.Filter(dataset.OnDay(day))
		}
		if !ok || scope.Len() == 0 {
			d.Notice = "No data for " + sel.Date
			return d
		}
	}

	switch sel.Mode {
	case ModeInsights:
		d.Sections = append(d.Sections, b.insights(scope, sel.Insight))
	default:
		d.Sections = append(d.Sections,
			b.summary(scope),
			b.distribution(scope),
			b.company(scope, sel.Company),
		)
	}
	return d
}

// Chart renders sel and returns the chart with the given ID.
func (b *Binder) Chart(sel Selection, id string) (ChartSpec, bool) {
	return b.Render(sel).Chart(id)
}

// Choices returns the values a client may select from.
func (b *Binder) Choices() Choices {
	dates := b.ds.UniqueValues(model.ColumnDate)
	slices.Sort(dates)
	return Choices{
		Modes: []ChoiceOption{
			{Value: string(ModeOverview), Label: "Data Summary"},
			{Value: string(ModeInsights), Label: "Insights"},
		},
		Insights:  insightOptions(),
		Companies: b.ds.UniqueValues(model.ColumnCompany),
		Countries: b.ds.UniqueValues(model.ColumnCountry),
		Dates:     dates,
	}
}

func (b *Binder) parseDate(s string) (time.Time, bool) {
	for _, layout := range b.dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (b *Binder) count(n int) Stat {
	return Stat{Value: b.printer.Sprintf("%d", n), Raw: float64(n)}
}

func (b *Binder) summary(ds *dataset.Dataset) Section {
	companies := b.count(aggregate.TotalUnique(ds, model.ColumnCompany))
	companies.Label = "Total Companies"
	users := b.count(aggregate.TotalUnique(ds, model.ColumnSender, model.ColumnReceiver))
	users.Label = "Total Users"
	countries := b.count(aggregate.TotalUnique(ds, model.ColumnCountry))
	countries.Label = "Total Countries"

	return Section{
		ID:    SectionSummary,
		Title: "Summary",
		Stats: []Stat{companies, users, countries},
	}
}

func (b *Binder) distribution(ds *dataset.Dataset) Section {
	sec := Section{ID: SectionDistribution, Title: "Distribution"}

	byCountry := aggregate.CountBy(ds, model.ColumnCountry)
	sec.Charts = append(sec.Charts, ChartSpec{
		ID:     ChartGeo,
		Kind:   KindScatterGeo,
		Title:  "Geographical Distribution",
		Labels: types.Keys(byCountry),
		Values: types.Values(byCountry),
		Colors: []string{mapLandColor},
		Accent: accentColor,
		XTitle: "Country",
		YTitle: "Events",
	})

	top, err := aggregate.TopNBySum(ds, model.ColumnCompany, model.ColumnPoints, b.topCompanies)
	if err != nil {
		sec.Notice = err.Error()
		return sec
	}
	sec.Charts = append(sec.Charts, ChartSpec{
		ID:     ChartCompanies,
		Kind:   KindPie,
		Title:  "Top companies by points",
		Labels: types.Keys(top),
		Values: types.Values(top),
		Colors: pieColors[:min(len(top), len(pieColors))],
		Accent: accentColor,
	})
	return sec
}

func (b *Binder) company(ds *dataset.Dataset, requested string) Section {
	sec := Section{ID: SectionCompany, Title: "Company"}

	available := ds.UniqueValues(model.ColumnCompany)
	choice := Choice{Name: "company", Label: "Company"}
	for _, c := range b.ds.UniqueValues(model.ColumnCompany) {
		choice.Options = append(choice.Options, ChoiceOption{Value: c, Label: c})
	}

	selected := requested
	if selected == "" && len(available) > 0 {
		selected = available[0]
	}
	choice.Selected = selected
	sec.Choices = []Choice{choice}

	if selected == "" {
		sec.Notice = "No data"
		return sec
	}
	if !slices.Contains(available, selected) {
		sec.Notice = "No data for company " + selected
		return sec
	}

	rows := ds.Filter(dataset.Equals(model.ColumnCompany, selected))
	receivers, err := aggregate.TopNBySum(rows, model.ColumnReceiver, model.ColumnPoints, b.topReceivers)
	if err != nil {
		sec.Notice = err.Error()
		return sec
	}
	series, err := aggregate.TimeSeriesSum(rows, dataset.Everything, model.ColumnDate, model.ColumnPoints)
	if err != nil {
		sec.Notice = err.Error()
		return sec
	}

	barColors := make([]string, len(receivers))
	for i := range barColors {
		barColors[i] = receiverColor
	}
	labels := make([]string, len(series))
	values := make([]float64, len(series))
	for i, p := range series {
		labels[i] = p.Date.Format(model.DateLayout)
		values[i] = p.Value
	}

	sec.Charts = []ChartSpec{
		{
			ID:     ChartReceivers,
			Kind:   KindBar,
			Title:  "Top receivers of " + selected + " by points",
			Labels: types.Keys(receivers),
			Values: types.Values(receivers),
			Colors: barColors,
			Accent: accentColor,
			XTitle: "Receiver ID",
			YTitle: "Points",
		},
		{
			ID:     ChartTrend,
			Kind:   KindLine,
			Title:  "Time series trend of points for " + selected,
			Labels: labels,
			Values: values,
			Colors: []string{trendColor},
			Accent: accentColor,
			XTitle: "Date",
			YTitle: "Total Points",
		},
	}
	return sec
}

func insightOptions() []ChoiceOption {
	return []ChoiceOption{
		{Value: string(InsightCountry), Label: "Country with Most Users"},
		{Value: string(InsightCompany), Label: "Company with Most Users"},
		{Value: string(InsightSender), Label: "Most awarding sender"},
		{Value: string(InsightReceiver), Label: "Most awarded receiver"},
	}
}

func (b *Binder) insights(ds *dataset.Dataset, in Insight) Section {
	sec := Section{
		ID:    SectionInsights,
		Title: "Insights",
		Choices: []Choice{{
			Name:     "insight",
			Label:    "Insights",
			Options:  insightOptions(),
			Selected: string(in),
		}},
	}

	var list List
	switch in {
	case InsightCountry:
		list.Title = "Top Countries with Most Users"
		for _, e := range b.usersPer(ds, model.ColumnCountry) {
			list.Items = append(list.Items, fmt.Sprintf("%s: %d users", e.Key, int(e.Value)))
		}
	case InsightCompany:
		list.Title = "Top Companies with Most Users"
		for _, e := range b.usersPer(ds, model.ColumnCompany) {
			list.Items = append(list.Items, fmt.Sprintf("%s: %d users", e.Key, int(e.Value)))
		}
	case InsightSender:
		list.Title = "Top Senders with Most Awards Given"
		for _, e := range b.awardsBy(ds, model.ColumnSender) {
			list.Items = append(list.Items, fmt.Sprintf("Sender ID: %s, Awards given: %d", e.Key, int(e.Value)))
		}
	case InsightReceiver:
		list.Title = "Top Receivers with Most Awards Received"
		for _, e := range b.awardsBy(ds, model.ColumnReceiver) {
			list.Items = append(list.Items, fmt.Sprintf("Receiver ID: %s, Awards received: %d", e.Key, int(e.Value)))
		}
	default:
		return sec
	}

	if len(list.Items) == 0 {
		list.Items = []string{}
		list.Notice = "No data"
	}
	sec.Lists = []List{list}
	return sec
}

// usersPer ranks groups by unique senders plus unique receivers.
func (b *Binder) usersPer(ds *dataset.Dataset, group model.Column) []types.Entry {
	rows := aggregate.UniqueCountPerGroup(ds, group, model.ColumnSender, model.ColumnReceiver)
	return aggregate.TopGroupCounts(rows, b.insightLimit)
}

func (b *Binder) awardsBy(ds *dataset.Dataset, key model.Column) []types.Entry {
	isAward := dataset.Equals(model.ColumnFeedType, b.awardFeedType)
	return aggregate.TopNByCount(ds, isAward, key, b.insightLimit)
}
