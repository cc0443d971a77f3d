package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Run        jsonRun     `json:"run"`
	Count      int         `json:"count"`
	Stages     []jsonStage `json:"stages"`
}

type jsonRun struct {
	ID                int64  `json:"id"`
	WorkMinutes       int    `json:"work_minutes"`
	ShortBreakMinutes int    `json:"short_break_minutes"`
	LongBreakMinutes  int    `json:"long_break_minutes"`
	Sessions          int    `json:"sessions"`
	ConfirmEachStage  bool   `json:"confirm_each_stage"`
	CancelMode        string `json:"cancel_mode"`
	Status            string `json:"status"`
	StoppedAt         string `json:"stopped_at,omitempty"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time,omitempty"`
}

type jsonStage struct {
	Position   int    `json:"position"`
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	PlannedSec int    `json:"planned_seconds"`
	ElapsedSec int    `json:"elapsed_seconds"`
	Elapsed    string `json:"elapsed"`
}

func ToJSON(run *store.Run, entries []store.StageEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
		Stages:     []jsonStage{},
		Run: jsonRun{
			ID:                run.ID,
			WorkMinutes:       run.WorkMinutes,
			ShortBreakMinutes: run.ShortBreakMinutes,
			LongBreakMinutes:  run.LongBreakMinutes,
			Sessions:          run.Sessions,
			ConfirmEachStage:  run.ConfirmEachStage,
			CancelMode:        run.CancelMode,
			Status:            run.Status,
			StoppedAt:         run.StoppedAt,
			StartTime:         run.StartedAt.Local().Format(time.RFC3339),
		},
	}
	if run.FinishedAt != nil {
		export.Run.EndTime = run.FinishedAt.Local().Format(time.RFC3339)
	}

	for _, e := range entries {
		export.Stages = append(export.Stages, jsonStage{
			Position:   e.Position + 1,
			Label:      e.Label,
			Kind:       e.Kind,
			Status:     e.Status,
			StartTime:  e.StartedAt.Local().Format(time.RFC3339),
			EndTime:    e.FinishedAt.Local().Format(time.RFC3339),
			PlannedSec: e.PlannedSeconds,
			ElapsedSec: e.ElapsedSeconds,
			Elapsed:    formatDuration(int64(e.ElapsedSeconds)),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
