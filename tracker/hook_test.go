package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCmd(t *testing.T) {
	sess := closedSession("abc", Coffee, monday, 300)

	cmd, err := sessionCmd(`notify-send "Break over" --urgency=low`, &sess)
	require.NoError(t, err)
	require.NotNil(t, cmd)

	assert.Equal(t, []string{"notify-send", "Break over", "--urgency=low"}, cmd.Args)
	assert.Contains(t, cmd.Env, "TIMETRACKER_CATEGORY=coffee")
	assert.Contains(t, cmd.Env, "TIMETRACKER_DURATION=300")
	assert.Contains(t, cmd.Env, "TIMETRACKER_SESSION=abc")
}

func TestSessionCmdEmpty(t *testing.T) {
	sess := closedSession("abc", Work, monday, 1)

	cmd, err := sessionCmd("", &sess)
	assert.NoError(t, err)
	assert.Nil(t, cmd)
}

func TestSessionCmdUnbalancedQuotes(t *testing.T) {
	sess := closedSession("abc", Work, monday, 1)

	_, err := sessionCmd(`echo "oops`, &sess)
	assert.ErrorIs(t, err, errParseSessionCmd)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Coffee ")
	require.NoError(t, err)
	assert.Equal(t, Coffee, c)

	_, err = ParseCategory("nap")
	assert.ErrorIs(t, err, errUnknownCategory)
}
