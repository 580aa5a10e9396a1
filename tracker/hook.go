package tracker

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/timetrackerpro/timetracker/internal/apperr"
)

var errParseSessionCmd = &apperr.Error{
	Message: "unable to parse tracking.cmd option",
}

// sessionCmd builds the command configured to run after a session closes.
// It returns nil when no command is configured.
func sessionCmd(cmdline string, sess *Session) (*exec.Cmd, error) {
	if cmdline == "" {
		return nil, nil
	}

	args, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, errParseSessionCmd.Wrap(err)
	}

	if len(args) == 0 {
		return nil, nil
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(
		os.Environ(),
		"TIMETRACKER_CATEGORY="+string(sess.Category),
		"TIMETRACKER_DURATION="+strconv.Itoa(sess.DurationSeconds),
		"TIMETRACKER_SESSION="+sess.ID,
	)

	return cmd, nil
}

// runSessionCmd starts the configured command in the background. Failures
// are logged only.
func runSessionCmd(cmdline string, sess Session, logger *slog.Logger) {
	cmd, err := sessionCmd(cmdline, &sess)
	if err != nil {
		logger.Error("session command", slog.Any("error", err))
		return
	}

	if cmd == nil {
		return
	}

	go func() {
		out, err := cmd.CombinedOutput()
		if err != nil {
			logger.Error(
				"session command failed",
				slog.String("cmd", cmdline),
				slog.String("output", fmt.Sprintf("%.200s", out)),
				slog.Any("error", err),
			)
		}
	}()
}
