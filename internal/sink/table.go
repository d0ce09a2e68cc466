package sink

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Geun-Oh/logview/internal/collection"
	"github.com/Geun-Oh/logview/internal/files"
)

// StatsTable renders level tree rows as a table.
func StatsTable(w io.Writer, rows []collection.TreeNode) error {
	table := tablewriter.NewWriter(w)
	table.Header("Level", "Name", "Count")

	for _, row := range rows {
		if err := table.Append([]string{row.Key, row.Name, strconv.Itoa(row.Count)}); err != nil {
			return fmt.Errorf("stats table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("stats table: %w", err)
	}
	return nil
}

// FilesTable renders discovered log files as a table.
func FilesTable(w io.Writer, found []files.LogFile) error {
	table := tablewriter.NewWriter(w)
	table.Header("File", "Date", "Size", "Modified")

	for _, f := range found {
		date := f.Date
		if date == "" {
			date = "-"
		}
		row := []string{f.Name(), date, humanSize(f.Size), f.ModTime.Format(time.DateTime)}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("files table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("files table: %w", err)
	}
	return nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
