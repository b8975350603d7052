package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/williampepple1/bondsports-scraper/internal/dom"
	"github.com/williampepple1/bondsports-scraper/pkg/models"
)

// Labels recognised in a card's field list
const (
	LabelDates              = "Dates"
	LabelRegistrationStarts = "Registration Starts"
	LabelEventName          = "Event Name"
	LabelDaysAndTime        = "Days & Time"
	LabelDays               = "Days"
)

var vocabulary = map[string]bool{
	LabelDates:              true,
	LabelRegistrationStarts: true,
	LabelEventName:          true,
	LabelDaysAndTime:        true,
	LabelDays:               true,
}

// timeLabels are tried in order for the time field
var timeLabels = []string{LabelDaysAndTime, LabelDays}

var (
	titlePattern = regexp.MustCompile(`(?i)\bTRAINING\b`)
	datePattern  = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\b`)
	timePattern  = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(AM|PM)`)
)

// Fields are the values read from one card. Empty means not found.
type Fields struct {
	Title              string
	Date               string
	Time               string
	RegistrationStarts string
}

// labeled holds the tier 1 result: the first value seen per known label, and
// the value of the final item when its label is not a known one.
type labeled struct {
	values map[string]string
	last   string
}

// ExtractFields reads one card. Lookup failures leave the affected field
// empty; they never abort the card.
func (e *Extractor) ExtractFields(ctx context.Context, card dom.Scope, mode models.Mode) Fields {
	items := e.readLabeledItems(ctx, card)

	var f Fields
	f.Date = items.values[LabelDates]
	f.RegistrationStarts = items.values[LabelRegistrationStarts]

	if mode == models.ModeSeasonCards {
		f.Title = e.text(ctx, card, e.Selectors.SeasonHeading)
		return f
	}

	f.Title = items.values[LabelEventName]
	for _, label := range timeLabels {
		if v := items.values[label]; v != "" {
			f.Time = v
			break
		}
	}
	if f.Time == "" {
		f.Time = items.last
	}

	if f.Title == "" || (f.Date == "" && f.Time == "") {
		e.scanText(ctx, card, &f)
	}
	return f
}

// readLabeledItems is tier 1: label/value pairs from the card's field list.
func (e *Extractor) readLabeledItems(ctx context.Context, card dom.Scope) labeled {
	out := labeled{values: make(map[string]string)}

	n, err := card.Count(ctx, e.Selectors.FieldItem)
	if err != nil {
		e.Log.Debug("counting field items failed", "error", err)
		return out
	}

	for j := 0; j < n; j++ {
		item, err := card.Nth(ctx, e.Selectors.FieldItem, j)
		if err != nil {
			e.Log.Debug("reading field item failed", "index", j, "error", err)
			continue
		}

		raw, found, err := item.Text(ctx, e.Selectors.FieldLabel)
		if err != nil || !found {
			continue
		}
		label := Normalize(raw)
		value := e.text(ctx, item, e.Selectors.FieldValue)

		if !vocabulary[label] {
			out.last = value
			continue
		}
		out.last = ""
		if _, seen := out.values[label]; !seen {
			out.values[label] = value
		}
	}
	return out
}

// scanText is tier 2: classify the card's text lines by pattern and fill
// whatever tier 1 left empty. First match per field wins.
func (e *Extractor) scanText(ctx context.Context, card dom.Scope, f *Fields) {
	raw, found, err := card.Text(ctx, "")
	if err != nil {
		e.Log.Debug("reading card text failed", "error", err)
		return
	}
	if !found {
		return
	}

	var title, date, tm string
	for _, ln := range strings.Split(raw, "\n") {
		ln = Normalize(ln)
		if ln == "" {
			continue
		}
		if title == "" && titlePattern.MatchString(ln) {
			title = ln
		}
		if date == "" && datePattern.MatchString(ln) {
			date = ln
		}
		if tm == "" && timePattern.MatchString(ln) {
			tm = ln
		}
	}

	if f.Title == "" {
		f.Title = title
	}
	if f.Date == "" {
		f.Date = date
	}
	if f.Time == "" {
		f.Time = tm
	}
}

// text returns the normalized text of the first selector match, or "".
func (e *Extractor) text(ctx context.Context, scope dom.Scope, selector string) string {
	raw, found, err := scope.Text(ctx, selector)
	if err != nil {
		e.Log.Debug("field lookup failed", "selector", selector, "error", err)
		return ""
	}
	if !found {
		return ""
	}
	return Normalize(raw)
}
