package starterbot_test

import (
	"github.com/alexandre-normand/starterbot"
	"github.com/stretchr/testify/assert"
	"log"
	"strings"
	"testing"
)

func TestLogWhenDebugEnabled(t *testing.T) {
	var b strings.Builder
	l := log.New(&b, "", 0)
	slog := starterbot.NewSLogger(l, true)

	slog.Debugf("Caching user [%s] for the first time\n", "U1")
	o := b.String()

	assert.Equal(t, "Caching user [U1] for the first time\n", o)
}

func TestLogWhenDebugDisabled(t *testing.T) {
	var b strings.Builder
	l := log.New(&b, "", 0)
	slog := starterbot.NewSLogger(l, false)

	slog.Debugf("Caching user [%s] for the first time\n", "U1")
	o := b.String()

	// Nothing should have been logged
	assert.Equal(t, "", o)
}

func TestPrintfLogsRegardlessOfDebug(t *testing.T) {
	for _, debug := range []bool{true, false} {
		var b strings.Builder
		l := log.New(&b, "", 0)
		slog := starterbot.NewSLogger(l, debug)

		slog.Printf("Failed to fetch channel [%s]\n", "C1")

		assert.Equal(t, "Failed to fetch channel [C1]\n", b.String(), "debug [%t]", debug)
	}
}

func TestDebugfKeepsCallerFileInfo(t *testing.T) {
	var b strings.Builder
	l := log.New(&b, "", log.Lshortfile)
	slog := starterbot.NewSLogger(l, true)

	slog.Debugf("Connected as [%s]", "starterbot")

	assert.True(t, strings.HasPrefix(b.String(), "slog_test.go:"), "unexpected log line [%s]", b.String())
}
