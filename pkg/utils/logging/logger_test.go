package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestLevelFilter(t *testing.T) {
	testCases := []struct {
		level       string
		expectDebug bool
		expectInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"WARNING", false, false},
		{"error", false, false},
		{"bogus", false, true}, // unknown levels fall back to info
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.New(tc.level, buf)

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Error("error message")

			output := buf.String()
			if tc.expectDebug {
				gt.S(t, output).Contains("debug message")
			} else {
				gt.S(t, output).NotContains("debug message")
			}
			if tc.expectInfo {
				gt.S(t, output).Contains("info message")
			} else {
				gt.S(t, output).NotContains("info message")
			}
			gt.S(t, output).Contains("error message")
		})
	}
}

func TestContextCarrier(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("debug", buf).With("component", "refresh")

	ctx := logging.With(context.Background(), logger)
	got := logging.From(ctx)
	gt.Equal(t, got, logger)

	got.Info("hello")
	gt.S(t, buf.String()).Contains("hello")
	gt.S(t, buf.String()).Contains("refresh")
}

func TestFromFallsBackToDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	logging.SetDefault(logging.New("info", buf))

	got := logging.From(context.Background())
	got.Info("via default")
	gt.S(t, buf.String()).Contains("via default")
}
