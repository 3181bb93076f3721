package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mcncl/rrapi/internal/models"
)

// Section titles
const (
	PayloadTitle  = "JSON PAYLOAD TO BE POSTED TO THE SERVER"
	ResponseTitle = "JSON RESPONSE RECEIVED FROM THE API"
	ResultsTitle  = "PARSED REPORT RESULTS"
)

// Formatter writes the program's report output
type Formatter struct {
	w       io.Writer
	err     error
	title   *color.Color
	warning *color.Color
}

// NewFormatter creates a new Formatter writing to w
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		w:       w,
		title:   color.New(color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
	}
}

// Err returns the first write error, if any
func (f *Formatter) Err() error {
	return f.err
}

// Lookup announces the report number being queried
func (f *Formatter) Lookup(reportNumber string) {
	f.printf("Looking up report number: %s\n\n", reportNumber)
}

// Section prints a title, a dashed underline and body, followed by a blank
// line.
func (f *Formatter) Section(title, body string) {
	f.printf("%s\n", f.title.Sprint(title))
	f.printf("%s\n", strings.Repeat("-", len(title)))
	f.printf("%s\n\n", body)
}

// Warning reports an application-level error returned by the API.
func (f *Formatter) Warning(message string) {
	f.printf("%s%s\n\n", f.warning.Sprint("Error processing request: "), message)
}

// Results prints the flattened response under the results header.
func (f *Formatter) Results(results *models.FlatMap) {
	f.printf("%s\n", f.title.Sprint(ResultsTitle))
	f.printf("%s\n", strings.Repeat("-", len(ResultsTitle)))
	for _, entry := range results.Entries() {
		f.printf("%s: %s\n", entry.Path, entry.Value)
	}
}

func (f *Formatter) printf(format string, args ...interface{}) {
	if f.err != nil {
		return
	}
	_, f.err = fmt.Fprintf(f.w, format, args...)
}
