package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

// ToCSV writes one row per recorded stage.
func ToCSV(run *store.Run, entries []store.StageEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Run", "Position", "Stage", "Kind", "Status", "Start", "End", "Planned (s)", "Elapsed (s)", "Elapsed"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			strconv.FormatInt(run.ID, 10),
			strconv.Itoa(e.Position + 1),
			e.Label,
			e.Kind,
			e.Status,
			e.StartedAt.Local().Format(time.RFC3339),
			e.FinishedAt.Local().Format(time.RFC3339),
			strconv.Itoa(e.PlannedSeconds),
			strconv.Itoa(e.ElapsedSeconds),
			formatDuration(int64(e.ElapsedSeconds)),
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
