package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zaphist/pkg/cli"
	"github.com/secmon-lab/zaphist/pkg/service/report"
)

const (
	legacyReport  = "../parser/testdata/legacy.html"
	currentReport = "../parser/testdata/current.html"
)

func TestDiffCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("Text output lists new and resolved alerts", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.NewApp(&buf).Run(ctx, []string{
			"zaphist", "--log-level", "error",
			"diff", "--current", currentReport, "--prior", legacyReport,
			"-e", "qa", "-i", "passive",
		})
		gt.NoError(t, err).Required()

		out := buf.String()
		gt.S(t, out).Contains("NEW ALERT - not found in most recent result")
		gt.S(t, out).Contains("ALERT POTENTIALLY RESOLVED")
		gt.S(t, out).Contains("Alert Type: SQL Injection")
	})

	t.Run("JSON output carries both snapshots", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.NewApp(&buf).Run(ctx, []string{
			"zaphist", "--log-level", "error",
			"diff", "--current", currentReport, "--prior", currentReport, "--format", "json",
		})
		gt.NoError(t, err).Required()

		var view report.View
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &view)).Required()
		gt.V(t, view.Prior).NotNil()
		gt.Equal(t, view.Current.Environment, "Not Provided")
		gt.False(t, view.Mismatch)
		for _, row := range view.Rows {
			gt.Equal(t, row.Delta, 0)
			gt.Equal(t, row.Comment, "Number of URLs Affected stayed the same")
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.NewApp(&buf).Run(ctx, []string{
			"zaphist", "--log-level", "error",
			"diff", "--current", "testdata/missing.html", "--prior", legacyReport,
		})
		gt.Error(t, err)
	})

	t.Run("Unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.NewApp(&buf).Run(ctx, []string{
			"zaphist", "--log-level", "error",
			"diff", "--current", currentReport, "--prior", legacyReport, "--format", "pdf",
		})
		gt.Error(t, err)
	})
}

func TestIngestCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("First report has nothing to compare", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.NewApp(&buf).Run(ctx, []string{
			"zaphist", "--log-level", "error",
			"ingest", "-f", currentReport, "-n", "shop", "-e", "qa", "-i", "passive", "-v", "1.2",
		})
		gt.NoError(t, err).Required()

		out := buf.String()
		gt.S(t, out).Contains("Not enough rows to compare results for qa and passive.")
		gt.S(t, out).Contains("1.2")
	})

	t.Run("Filename is required", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.NewApp(&buf).Run(ctx, []string{
			"zaphist", "--log-level", "error",
			"ingest", "-e", "qa",
		})
		gt.Error(t, err)
	})

	t.Run("Half configured Slack is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.NewApp(&buf).Run(ctx, []string{
			"zaphist", "--log-level", "error",
			"ingest", "-f", currentReport, "--slack-oauth-token", "xoxb-test",
		})
		gt.Error(t, err)
	})
}
