package workflow

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	derrors "github.com/deskautomate/engine/internal/errors"
	"gopkg.in/yaml.v3"
)

// LoadDocument reads a workflow document from path, decoding it as YAML or
// JSON depending on its extension (".json" decodes as JSON; anything else,
// including ".yaml"/".yml", decodes as YAML). SourcePath is set to path so
// the executor can look for relative script_file arguments in the
// document's own directory.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.Wrapf(err, derrors.CodeInvalidWorkflow, "reading workflow document %q", path)
	}

	var doc Document

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, derrors.Wrapf(err, derrors.CodeInvalidWorkflow, "parsing workflow document %q as JSON", path)
		}
	} else if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, derrors.Wrapf(err, derrors.CodeInvalidWorkflow, "parsing workflow document %q as YAML", path)
	}

	doc.SourcePath = path

	return &doc, nil
}
