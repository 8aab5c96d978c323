package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fyzahq/fyza/internal/goals"
	"github.com/fyzahq/fyza/internal/model"
)

var printer = message.NewPrinter(language.English)

// formatAmount groups thousands, e.g. 500000 -> "500,000.00"
func formatAmount(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

func printGoals(w io.Writer, list []goals.Goal) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No financial goals found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTARGET\tDATE\tPRIORITY\tUPDATED")
	for _, g := range list {
		updated := "-"
		if g.UpdatedAt != nil {
			updated = g.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		date := g.TargetDate.String()
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID.String(),
			g.Name,
			formatAmount(g.TargetAmount),
			date,
			g.Priority,
			updated,
		)
	}
	return tw.Flush()
}

// goalRecord is the JSON form printed by --json; it matches the API records
// so the output can be fed back to import.
type goalRecord struct {
	GoalID       string         `json:"goal_id,omitempty"`
	GoalName     string         `json:"goal_name"`
	TargetAmount float64        `json:"target_amount"`
	TargetDate   model.Date     `json:"target_date"`
	Priority     model.Priority `json:"priority"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

func printJSON(w io.Writer, list []goals.Goal) error {
	records := make([]goalRecord, 0, len(list))
	for _, g := range list {
		id, _ := g.ID.RemoteID()
		records = append(records, goalRecord{
			GoalID:       id,
			GoalName:     g.Name,
			TargetAmount: g.TargetAmount,
			TargetDate:   g.TargetDate,
			Priority:     g.Priority,
			CreatedAt:    g.CreatedAt,
			UpdatedAt:    g.UpdatedAt,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
