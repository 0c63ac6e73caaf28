package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/urfave/cli/v3"
)

// Parser holds report parser configuration
type Parser struct {
	MaxDocumentBytes int
}

// Flags returns CLI flags for Parser configuration
func (p *Parser) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-document-bytes",
			Usage:       "Largest report document accepted, in bytes",
			Category:    "Parser",
			Value:       parser.DefaultMaxDocumentBytes,
			Sources:     cli.EnvVars("ZAPHIST_MAX_DOCUMENT_BYTES"),
			Destination: &p.MaxDocumentBytes,
		},
	}
}

// Configure creates a report parser
func (p *Parser) Configure() (*parser.Parser, error) {
	if p.MaxDocumentBytes <= 0 {
		return nil, goerr.New("max-document-bytes must be positive", goerr.V("value", p.MaxDocumentBytes))
	}
	return parser.New(parser.WithMaxDocumentBytes(p.MaxDocumentBytes)), nil
}

// LogValue returns structured log value
func (p Parser) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("max_document_bytes", p.MaxDocumentBytes))
}
