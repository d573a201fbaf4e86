package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/stockrecon/pkg/constants"
	"github.com/agentstation/stockrecon/pkg/documents"
	"github.com/agentstation/stockrecon/pkg/errors"
)

// dispatchFilePrefix namespaces dispatch files sharing a folder with issue files.
const dispatchFilePrefix = "WZ_"

// SaveIssue writes an issue document as JSON into dir and returns the path.
// The file is named after the identifier, e.g. RW_U00054_22.json.
func SaveIssue(dir string, doc documents.IssueDocument) (string, error) {
	doc = doc.Normalize()
	path := filepath.Join(dir, documents.FileName("", doc.ID, ".json"))
	if err := writeJSON(dir, path, doc); err != nil {
		return "", errors.WrapResource("save", "issue", doc.ID, err)
	}
	return path, nil
}

// SaveDispatch writes a dispatch document as JSON into dir and returns the path.
func SaveDispatch(dir string, doc documents.DispatchDocument) (string, error) {
	doc = doc.Normalize()
	path := filepath.Join(dir, documents.FileName(dispatchFilePrefix, doc.ID, ".json"))
	if err := writeJSON(dir, path, doc); err != nil {
		return "", errors.WrapResource("save", "dispatch", doc.ID, err)
	}
	return path, nil
}

func writeJSON(dir, path string, v any) error {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
