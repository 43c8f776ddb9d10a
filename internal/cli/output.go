package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"leaguerank/internal/dates"
	"leaguerank/internal/model"
	"leaguerank/internal/services/match"
	"leaguerank/internal/services/replay"
	"leaguerank/internal/services/standings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.Player:
		o.printPlayer(v)
	case []*model.Player:
		o.printPlayerList(v)
	case HistoryResult:
		o.printHistory(v)
	case *match.Result:
		o.printMatchResult(v)
	case *replay.Summary:
		o.printReplaySummary(v)
	case []standings.Row:
		o.printStandings(v)
	case PredictResult:
		o.printPredictResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HistoryResult is one player's rating trail
type HistoryResult struct {
	Name    string               `json:"name"`
	Cohort  string               `json:"cohort,omitempty"`
	Samples []model.RatingSample `json:"samples"`
}

// PredictResult is a head-to-head estimate
type PredictResult struct {
	A           string  `json:"a"`
	B           string  `json:"b"`
	Probability float64 `json:"probability"`
}

func playerLabel(name, cohort string) string {
	if cohort == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, cohort)
}

func (o *Output) printPlayer(p *model.Player) {
	fmt.Printf("Player: %s\n", playerLabel(p.Name, p.Cohort))
	fmt.Printf("Rating: %.1f ± %.1f\n", p.Rating, p.Deviation)
	fmt.Printf("Volatility: %.4f\n", p.Volatility)
	fmt.Printf("Last active: %s\n", dates.FormatDay(p.LastActiveDay))
}

func (o *Output) printPlayerList(players []*model.Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  %-30s %7.1f ± %5.1f  last active %s\n",
			playerLabel(p.Name, p.Cohort), p.Rating, p.Deviation, dates.FormatDay(p.LastActiveDay))
	}
}

func (o *Output) printHistory(h HistoryResult) {
	fmt.Printf("History: %s\n", playerLabel(h.Name, h.Cohort))
	for _, s := range h.Samples {
		fmt.Printf("  %s  %7.1f ± %5.1f  vol %.4f\n",
			dates.FormatDay(s.Day), s.Rating, s.Deviation, s.Volatility)
	}
}

func (o *Output) printMatchResult(r *match.Result) {
	fmt.Printf("Event on %s (%d entrants):\n", dates.FormatDay(r.Day), len(r.Players))
	for _, p := range r.Players {
		newStr := ""
		if p.Created {
			newStr = " [new]"
		}
		fmt.Printf("  #%-3d %-30s %7.1f -> %7.1f (%+.1f)%s\n",
			p.Rank, playerLabel(p.Name, p.Cohort),
			p.Before.Value, p.After.Value, p.After.Value-p.Before.Value, newStr)
	}
}

func (o *Output) printReplaySummary(s *replay.Summary) {
	fmt.Printf("Replayed %d events across %d players\n", s.Events, s.Players)
}

func (o *Output) printStandings(rows []standings.Row) {
	fmt.Printf("%-4s %-30s %8s %6s %8s %8s %s\n",
		"#", "Player", "Rating", "RD", "Low", "High", "Last active")
	for _, r := range rows {
		fmt.Printf("%-4d %-30s %8.1f %6.1f %8.1f %8.1f %s\n",
			r.Rank, playerLabel(r.Name, r.Cohort),
			r.Rating, r.Deviation, r.R95Lower, r.R95Upper, dates.FormatDay(r.LastActiveDay))
	}
}

func (o *Output) printPredictResult(p PredictResult) {
	fmt.Printf("P(%s beats %s) = %.3f\n", p.A, p.B, p.Probability)
}
