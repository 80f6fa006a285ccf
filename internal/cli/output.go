package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/mcoot/playerroster/internal/api/response"
	"github.com/mcoot/playerroster/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case response.PlayerPage:
		o.printTable(v.Players)
		_, _ = fmt.Fprintf(o.w, "\nPage %d (size %d), %d matching\n", v.PageNumber, v.PageSize, v.Total)
	case response.PlayerList:
		o.printTable(v.Players)
		_, _ = fmt.Fprintf(o.w, "\n%d players\n", len(v.Players))
	case response.Count:
		_, _ = fmt.Fprintln(o.w, v.Count)
	case response.Health:
		_, _ = fmt.Fprintf(o.w, "Server status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	_, _ = fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	_, _ = fmt.Fprintf(tw, "Race:\t%s\n", p.Race)
	_, _ = fmt.Fprintf(tw, "Profession:\t%s\n", p.Profession)
	_, _ = fmt.Fprintf(tw, "Birthday:\t%s\n", formatBirthday(p.Birthday))
	_, _ = fmt.Fprintf(tw, "Experience:\t%d\n", p.Experience)
	_, _ = fmt.Fprintf(tw, "Level:\t%d (%d to next)\n", p.Level, p.UntilNextLevel)
	_, _ = fmt.Fprintf(tw, "Banned:\t%t\n", p.Banned)
	_ = tw.Flush()
}

func (o *Output) printTable(players []response.Player) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTITLE\tRACE\tPROFESSION\tBIRTHDAY\tEXP\tLEVEL\tBANNED")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%t\n",
			p.ID, p.Name, p.Title, p.Race, p.Profession, formatBirthday(p.Birthday), p.Experience, p.Level, p.Banned)
	}
	_ = tw.Flush()
}

func formatBirthday(ms int64) string {
	return model.FromMillis(ms).Format(time.DateOnly)
}
