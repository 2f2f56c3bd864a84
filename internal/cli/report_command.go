package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"project-timer/internal/api"
	"project-timer/internal/domain"
	"project-timer/internal/errors"
	"project-timer/internal/services"
)

// ReportCommand handles the report command
type ReportCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

// Execute runs the report command. Arguments are an optional period
// (day, week or month) and an optional format=table|csv|json.
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	period := domain.PeriodDay
	format := "table"

	for _, arg := range args {
		if strings.HasPrefix(arg, "format=") {
			format = strings.TrimPrefix(arg, "format=")
			continue
		}
		p, err := domain.ParsePeriod(arg)
		if err != nil {
			if c.app.strict() {
				return c.errorHandler.Handle("build report", errors.NewInvalidInputError("period", arg, "expected day, week or month"))
			}
			continue
		}
		period = p
	}

	report := c.api.Breakdown(ctx, period)

	switch format {
	case "table":
		c.writeTable(report)
		return nil
	case "csv":
		return c.writeCSV(report)
	case "json":
		return c.writeJSON(report)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format, expected table, csv or json")
	}
}

func (c *ReportCommand) writeTable(report *services.Report) {
	c.app.printf("%s %s\n",
		titleStyle.Render("Time Breakdown ("+report.Period.Title()+")"),
		mutedStyle.Render("since "+report.Start.Format(c.app.config.Display.TimeFormat)))

	if len(report.Rows) == 0 {
		c.app.printf("No projects yet\n")
		return
	}

	width := len("Total")
	for _, row := range report.Rows {
		if w := len([]rune(row.Name)); w > width {
			width = w
		}
	}
	for _, row := range report.Rows {
		c.app.printf("  %s  %s\n", padRight(row.Name, width), row.Hours)
	}
	c.app.printf("  %s  %s\n", padRight(nameStyle.Render("Total"), width), domain.Hours(report.TotalSeconds))
}

func (c *ReportCommand) writeCSV(report *services.Report) error {
	writer := csv.NewWriter(c.app.out)

	if err := writer.Write([]string{"Project ID", "Project", "Period", "Seconds", "Hours"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range report.Rows {
		record := []string{
			row.ProjectID,
			row.Name,
			string(report.Period),
			strconv.FormatInt(row.Seconds, 10),
			fmt.Sprintf("%.1f", float64(row.Seconds)/3600),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (c *ReportCommand) writeJSON(report *services.Report) error {
	enc := json.NewEncoder(c.app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
