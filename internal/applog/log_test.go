package applog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/applog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]applog.Level{
		"silent":  applog.Silent,
		"summary": applog.Summary,
		"normal":  applog.Normal,
		"verbose": applog.Verbose,
		"bogus":   applog.Normal,
		"":        applog.Normal,
	}
	for s, want := range cases {
		assert.Equal(t, want, applog.ParseLevel(s), "ParseLevel(%q)", s)
	}
}

func TestNilLoggerDoesNotPanic(t *testing.T) {
	var l *applog.Logger
	assert.NotPanics(t, func() {
		l.Info("tag", "message")
		l.Verbose("tag", "message")
		l.Summary("tag", "message")
	})
}
