package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stockrecon/pkg/documents"
	"github.com/agentstation/stockrecon/pkg/errors"
	"github.com/agentstation/stockrecon/pkg/logging"
	"github.com/agentstation/stockrecon/pkg/reconcile"
	"github.com/agentstation/stockrecon/pkg/store"
)

type testApp struct {
	*App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	config *Config
}

// newTestApp builds an app over fresh record folders holding one matching
// and one discrepant cluster.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	root := t.TempDir()
	config := &Config{
		IssueDir:    filepath.Join(root, "RW_json"),
		DispatchDir: filepath.Join(root, "WZ_json"),
		TextDir:     filepath.Join(root, "RW_txt"),
		Workers:     2,
		LogFormat:   "json",
		LogOutput:   "stderr",
	}

	_, err := store.SaveIssue(config.IssueDir, documents.IssueDocument{
		ID:           "RW/U00054/22",
		DispatchRefs: []string{"123/04/22/6"},
		Items:        []documents.IssueItem{{Index: 2167, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = store.SaveIssue(config.IssueDir, documents.IssueDocument{
		ID:           "RW/U00060/22",
		DispatchRefs: []string{"124/04/22/6"},
		Items:        []documents.IssueItem{{Index: 2160, Quantity: 3}},
	})
	require.NoError(t, err)
	_, err = store.SaveDispatch(config.DispatchDir, documents.DispatchDocument{
		ID:             "123/04/22/6",
		DispositionRef: "060/22",
		Items:          []documents.DispatchItem{{Index: 2167, Name: "PŁYTA PW-95", Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = store.SaveDispatch(config.DispatchDir, documents.DispatchDocument{
		ID:             "124/04/22/6",
		DispositionRef: "061/22",
		Items:          []documents.DispatchItem{{Index: 2160, Name: "KLEJ K-12", Quantity: 4}},
	})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	app, err := New("1.2.3", "abc123", "2024-01-01", "test",
		WithConfig(config),
		WithLogger(logging.NewNopLogger()),
		WithOutput(&stdout, &stderr),
	)
	require.NoError(t, err)

	return &testApp{App: app, stdout: &stdout, stderr: &stderr, config: config}
}

func TestNewWithOptions(t *testing.T) {
	ta := newTestApp(t)

	assert.Equal(t, "1.2.3", ta.Version())
	assert.Equal(t, "abc123", ta.Commit())
	assert.Equal(t, "2024-01-01", ta.Date())
	assert.Equal(t, "test", ta.BuiltBy())
	assert.Same(t, ta.config, ta.Config())
	assert.Equal(t, ta.config.IssueDir, ta.Settings().IssueDir)
	assert.Equal(t, 2, ta.Settings().Workers)
	assert.Same(t, ta.stdout, ta.Stdout())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New("dev", "", "", "", WithConfig(&Config{IssueDir: "a", DispatchDir: "b", TextDir: "c"}))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCheckerIsSingleton(t *testing.T) {
	ta := newTestApp(t)

	first, err := ta.Checker()
	require.NoError(t, err)
	second, err := ta.Checker()
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := ta.CheckerWithOptions()
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(errors.NewDiscrepancyError(1, 1)))
	assert.Equal(t, 2, ExitCode(errors.WrapResource("run", "compare", "", errors.NewDiscrepancyError(1, 1))))
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	writeError(&buf, errors.NewDiscrepancyError(1, 2))
	assert.Equal(t, "! 2 discrepant item(s) in 1 cluster(s)\n", buf.String())

	buf.Reset()
	writeError(&buf, errors.NewValidationError("format", "xml", "unknown"))
	assert.Equal(t, "✗ stockrecon failed: invalid format: unknown\n", buf.String())
}

func TestSetupInstallsDefaultLogger(t *testing.T) {
	previous := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(previous) })

	logFile := filepath.Join(t.TempDir(), "stockrecon.log")
	var stdout, stderr bytes.Buffer
	a, err := New("1.2.3", "", "", "", WithConfig(&Config{
		IssueDir:    "RW_json",
		DispatchDir: "WZ_json",
		TextDir:     "RW_txt",
		Workers:     1,
		LogFormat:   "json",
		LogOutput:   logFile,
	}), WithOutput(&stdout, &stderr))
	require.NoError(t, err)
	require.NoError(t, a.Execute(context.Background(), []string{"version"}))

	logging.Default().Info().Msg("after setup")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"after setup"`)
}

func TestExecuteCompareJSON(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.Execute(context.Background(), []string{"compare", "-o", "json"}))

	var report reconcile.Report
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &report))
	assert.Equal(t, 2, report.Summary.Clusters)
	assert.Equal(t, 1, report.Summary.DiscrepantClusters)
	assert.Equal(t, 1, report.Summary.DiscrepancyRows)
	require.Len(t, report.Clusters, 2)
	assert.Equal(t, []string{"060/22"}, report.Clusters[0].Dispositions)
	assert.Equal(t, []string{"061/22"}, report.Clusters[1].Dispositions)
	assert.Equal(t, reconcile.StatusDiscrepancy, report.Clusters[1].Rows[0].Status)

	assert.Contains(t, ta.stderr.String(), "1 discrepant item(s) in 1 of 2 cluster(s)")
}

func TestExecuteCompareText(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.Execute(context.Background(), []string{"compare", "-o", "text", "--only-discrepancies"}))

	out := ta.stdout.String()
	assert.Contains(t, out, "WZ   : [124/04/22/6]")
	assert.Contains(t, out, "RW   : [RW/U00060/22]")
	assert.NotContains(t, out, "RW/U00054/22")
}

func TestExecuteCompareRedirectedDefaultsToText(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.Execute(context.Background(), []string{"compare"}))

	out := ta.stdout.String()
	assert.Contains(t, out, "RW   : [RW/U00054/22]")
	assert.Contains(t, out, "STATUS")
	assert.NotContains(t, out, `"clusters"`)
}

func TestExecuteCompareFailOnDiscrepancy(t *testing.T) {
	ta := newTestApp(t)

	err := ta.Execute(context.Background(), []string{"compare", "-o", "json", "--fail-on-discrepancy"})
	require.Error(t, err)
	assert.True(t, errors.IsDiscrepancy(err))
	assert.Equal(t, 2, ExitCode(err))
}

func TestExecuteCompareFailOnDiscrepancyFromConfig(t *testing.T) {
	ta := newTestApp(t)
	ta.config.FailOnDiscrepancy = true

	err := ta.Execute(context.Background(), []string{"compare", "-o", "json"})
	assert.True(t, errors.IsDiscrepancy(err))

	ta.stdout.Reset()
	err = ta.Execute(context.Background(), []string{"compare", "-o", "json", "--fail-on-discrepancy=false"})
	assert.NoError(t, err)
}

func TestExecuteCompareMissingFolder(t *testing.T) {
	ta := newTestApp(t)

	err := ta.Execute(context.Background(), []string{"compare", "--issues", filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestExecuteInvalidFormat(t *testing.T) {
	ta := newTestApp(t)

	err := ta.Execute(context.Background(), []string{"compare", "-o", "xml"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, ta.stdout.String())
}

func TestExecuteVersion(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.Execute(context.Background(), []string{"version"}))
	assert.Equal(t, "stockrecon 1.2.3\n", ta.stdout.String())

	ta.stdout.Reset()
	require.NoError(t, ta.Execute(context.Background(), []string{"version", "-v"}))
	assert.Contains(t, ta.stdout.String(), "commit:   abc123")
	assert.Contains(t, ta.stdout.String(), "built by: test")
}
