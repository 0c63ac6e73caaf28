package cli

import (
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/secmon-lab/zaphist/pkg/service/report"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// readDocument loads a report document from path, refusing files above limit
func readDocument(path string, limit int) (parser.Document, error) {
	if path == "" {
		return parser.Document{}, goerr.New("report file path is required", goerr.T(model.ErrTagValidation))
	}

	info, err := os.Stat(path)
	if err != nil {
		return parser.Document{}, goerr.Wrap(err, "failed to stat report file", goerr.V("path", path))
	}
	if limit > 0 && info.Size() > int64(limit) {
		return parser.Document{}, goerr.New("report file too large",
			goerr.V("path", path),
			goerr.V("size", info.Size()),
			goerr.V("limit", limit),
			goerr.T(model.ErrTagParse))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return parser.Document{}, goerr.Wrap(err, "failed to read report file", goerr.V("path", path))
	}

	return parser.Document{Name: path, Content: data}, nil
}

// writeReport renders rep to the command's writer
func writeReport(c *cli.Command, renderer *report.Renderer, rep *model.Report, format report.Format) error {
	var w io.Writer = os.Stdout
	if root := c.Root(); root != nil && root.Writer != nil {
		w = root.Writer
	}

	if err := renderer.Render(w, rep, format); err != nil {
		return goerr.Wrap(err, "failed to render report")
	}
	return nil
}
