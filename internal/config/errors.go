package config

import "github.com/timetrackerpro/timetracker/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidWorkHours = &apperr.Error{
		Message: "work_hours.%s must be a time of day such as 09:00, got %q",
	}

	errWorkHoursOrder = &apperr.Error{
		Message: "work_hours.start (%s) must be before work_hours.end (%s)",
	}

	errInvalidTarget = &apperr.Error{
		Message: "tracking.target_work_hours must be between %v and %v",
	}

	errNegativeRetention = &apperr.Error{
		Message: "tracking.data_retention_days cannot be negative",
	}

	errInvalidThreshold = &apperr.Error{
		Message: "auto_pause.%s must be between %d and %d",
	}

	errThresholdOrder = &apperr.Error{
		Message: "auto_pause.lunch_threshold_minutes (%d min) must be longer than auto_pause.minimum_pause_seconds (%d s)",
	}

	errInvalidCategory = &apperr.Error{
		Message: "invalid start category: %s",
	}
)
