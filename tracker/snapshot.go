package tracker

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/timetrackerpro/timetracker/internal/osutil"
)

// Snapshot is a read-only view of the tracker, published after every change
// and every clock tick.
type Snapshot struct {
	Now              time.Time     `json:"last_update"`
	SessionStart     time.Time     `json:"session_start,omitzero"`
	Category         Category      `json:"active_category,omitempty"`
	Accumulators     Accumulators  `json:"accumulators"`
	LockedFor        time.Duration `json:"locked_for"`
	TargetWorkHours  float64       `json:"target_work_hours"`
	Elapsed          int           `json:"elapsed"`
	TodayWorkSeconds int           `json:"today_work_seconds"`
	PauseState       PauseState    `json:"pause_state"`
	Running          bool          `json:"running"`
	Locked           bool          `json:"locked"`
}

// WorkProgress is today's work time as a fraction of the target. It may
// exceed 1.
func (s *Snapshot) WorkProgress() float64 {
	if s.TargetWorkHours <= 0 {
		return 0
	}

	return float64(s.TodayWorkSeconds) / (s.TargetWorkHours * 3600)
}

// WriteStatusFile stores snap as JSON at path, replacing the previous file
// atomically.
func WriteStatusFile(path string, snap *Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), osutil.DirPermission)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"

	err = os.WriteFile(tmp, b, osutil.FilePermission)
	if err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// ReadStatusFile loads the snapshot written by a running instance. The
// second value is false when no status file exists.
func ReadStatusFile(path string) (*Snapshot, bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	var s Snapshot

	err = json.Unmarshal(b, &s)
	if err != nil {
		return nil, false, err
	}

	return &s, true, nil
}
