package view

// ChartKind names how a chart is drawn.
type ChartKind string

const (
	KindScatterGeo ChartKind = "scatter-geo"
	KindPie        ChartKind = "pie"
	KindBar        ChartKind = "bar"
	KindLine       ChartKind = "line"
)

// Display is the full content of one dashboard page.
type Display struct {
	Mode     Mode      `json:"mode"`
	Title    string    `json:"title"`
	Notice   string    `json:"notice,omitempty"`
	Sections []Section `json:"sections"`
}

// Section is a titled block of stats, charts, lists and choices.
type Section struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Notice  string      `json:"notice,omitempty"`
	Stats   []Stat      `json:"stats,omitempty"`
	Charts  []ChartSpec `json:"charts,omitempty"`
	Lists   []List      `json:"lists,omitempty"`
	Choices []Choice    `json:"choices,omitempty"`
}

// Stat is a labeled headline number.
type Stat struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
}

// ChartSpec describes a chart independent of how it is drawn.
type ChartSpec struct {
	ID     string    `json:"id"`
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
	Accent string    `json:"accent,omitempty"`
	XTitle string    `json:"x_title,omitempty"`
	YTitle string    `json:"y_title,omitempty"`
}

// Empty reports whether the chart has nothing to draw.
func (c ChartSpec) Empty() bool {
	return len(c.Values) == 0
}

// List is an ordered, titled list of lines.
type List struct {
	Title  string   `json:"title"`
	Items  []string `json:"items"`
	Notice string   `json:"notice,omitempty"`
}

// Choice is a selection widget: its options and the current pick.
type Choice struct {
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Options  []ChoiceOption `json:"options"`
	Selected string         `json:"selected,omitempty"`
}

// ChoiceOption is one entry of a Choice.
type ChoiceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Choices are the values a client can put in a Selection.
type Choices struct {
	Modes     []ChoiceOption `json:"modes"`
	Insights  []ChoiceOption `json:"insights"`
	Companies []string       `json:"companies"`
	Countries []string       `json:"countries"`
	Dates     []string       `json:"dates"`
}

// Chart returns the chart with the given ID from any section.
func (d Display) Chart(id string) (ChartSpec, bool) {
	for _, s := range d.Sections {
		for _, c := range s.Charts {
			if c.ID == id {
				return c, true
			}
		}
	}
	return ChartSpec{}, false
}

// Section returns the section with the given ID.
func (d Display) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
