package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/pomotrack/internal/ledger"
)

// ToCSV writes the day ledger, oldest day first.
func ToCSV(d ledger.Daily, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Weekday", "Minutes", "Duration", "Pomodoros"}); err != nil {
		return err
	}

	for _, k := range sortedKeys(d) {
		e := d[k]
		row := []string{
			string(k),
			k.Weekday().String()[:3],
			strconv.Itoa(e.Minutes),
			formatDuration(int64(e.Minutes) * 60),
			strconv.Itoa(e.Pomodoros),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ActivitiesToCSV writes one row per activity.
func ActivitiesToCSV(acts []ledger.Activity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Name", "Goal (h)", "Start", "Tracked (s)", "Tracked", "Completed", "End"}); err != nil {
		return err
	}

	for _, a := range acts {
		endStr := ""
		if a.EndDate != nil {
			endStr = a.EndDate.Local().Format(time.RFC3339)
		}
		row := []string{
			a.ID,
			a.Name,
			strconv.Itoa(a.GoalHours),
			a.StartDate.Local().Format(time.RFC3339),
			strconv.FormatInt(a.CurrentSeconds, 10),
			formatDuration(a.CurrentSeconds),
			strconv.FormatBool(a.Completed),
			endStr,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
