package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stockrecon/internal/cmd/table"
	"github.com/agentstation/stockrecon/pkg/documents"
	"github.com/agentstation/stockrecon/pkg/extract"
	"github.com/agentstation/stockrecon/pkg/logging"
	"github.com/agentstation/stockrecon/pkg/reconcile"
	"github.com/agentstation/stockrecon/pkg/store"
)

func sampleReport() *reconcile.Report {
	snap := store.NewSnapshot(
		[]documents.IssueDocument{
			{ID: "RW/U00054/22", DispatchRefs: []string{"123/04/22/6"}, Items: []documents.IssueItem{{Index: 2167, Quantity: 2}}},
		},
		[]documents.DispatchDocument{
			{ID: "123/04/22/6", DispositionRef: "060/22", Items: []documents.DispatchItem{{Index: 2167, Name: "PŁYTA PW-95", Quantity: 2}}},
		},
	)
	return reconcile.Reconcile(logging.WithLogger(context.Background(), logging.NewNopLogger()), snap)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"TABLE", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"wide", "", true},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestDetectFormatDefaultsToText(t *testing.T) {
	// go test never runs with a terminal on stdout.
	assert.Equal(t, FormatText, DetectFormat(""))
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &TextFormatter{}, NewFormatter(FormatText))
	assert.IsType(t, &TextFormatter{}, NewFormatter(""))
}

func TestTextFormatterMatchesWriteText(t *testing.T) {
	report := sampleReport()

	var want bytes.Buffer
	require.NoError(t, reconcile.WriteText(&want, report))

	var got bytes.Buffer
	require.NoError(t, NewFormatter(FormatText).Format(&got, report))
	assert.Equal(t, want.String(), got.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sampleReport()))

	var decoded reconcile.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Clusters, 1)
	assert.Equal(t, reconcile.StatusMatch, decoded.Clusters[0].Rows[0].Status)
	assert.Contains(t, buf.String(), `"dispatch_quantity": 2`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, sampleReport()))

	var decoded reconcile.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Clusters, 1)
	assert.Equal(t, []string{"RW/U00054/22"}, decoded.Clusters[0].IssueIDs)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, sampleReport()))
	out := buf.String()
	assert.Contains(t, out, "123/04/22/6")
	assert.Contains(t, out, "MATCH")
	assert.Contains(t, out, "PŁYTA PW-95")
}

func TestTableFormatterVerifications(t *testing.T) {
	vs := []extract.Verification{extract.Verify(documents.IssueDocument{ID: "RW/U1/22"}, "scan.txt")}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, vs))
	assert.Contains(t, buf.String(), "NO ITEMS")
	assert.Contains(t, buf.String(), "scan.txt")
}

func TestTableFormatterReflection(t *testing.T) {
	type record struct {
		DocumentID string   `json:"document_id"`
		Refs       []string `json:"refs,omitempty"`
		Count      int
	}

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, []record{{DocumentID: "RW/U1/22", Refs: []string{"a", "b"}, Count: 3}}))
	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "DOCUMENT ID")
	assert.Contains(t, out, "A, B")
}

func TestTableFormatterData(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{Headers: []string{"Key", "Value"}, Rows: [][]string{{"clusters", "4"}}}
	require.NoError(t, (&TableFormatter{}).Format(&buf, data))
	assert.Contains(t, buf.String(), "clusters")
}
