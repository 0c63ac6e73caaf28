package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/diff"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/service/report"
	"github.com/urfave/cli/v3"
)

// NotProvided is the value of scan metadata the caller did not supply
const NotProvided = "Not Provided"

// Report holds the scan metadata and output settings of a comparison report
type Report struct {
	Filename     string
	ProjectName  string
	Environment  string
	ScanType     string
	ReportLink   string
	Version      string
	Format       string
	Title        string
	Timezone     string
	CommentsFile string
}

// Flags returns CLI flags for Report configuration
func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "filename",
			Aliases:     []string{"f"},
			Usage:       "Path of the scanner HTML report",
			Category:    "Report",
			Destination: &r.Filename,
		},
		&cli.StringFlag{
			Name:        "projectname",
			Aliases:     []string{"n"},
			Usage:       "Name of the scanned project",
			Category:    "Report",
			Value:       NotProvided,
			Sources:     cli.EnvVars("ZAPHIST_PROJECT_NAME"),
			Destination: &r.ProjectName,
		},
		&cli.StringFlag{
			Name:        "environment",
			Aliases:     []string{"e"},
			Usage:       "Environment that was scanned",
			Category:    "Report",
			Value:       NotProvided,
			Destination: &r.Environment,
		},
		&cli.StringFlag{
			Name:        "scantype",
			Aliases:     []string{"i"},
			Usage:       "Type of the scan",
			Category:    "Report",
			Value:       NotProvided,
			Destination: &r.ScanType,
		},
		&cli.StringFlag{
			Name:        "urllink",
			Aliases:     []string{"l"},
			Usage:       "Link to the published report",
			Category:    "Report",
			Value:       NotProvided,
			Destination: &r.ReportLink,
		},
		&cli.StringFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "Version of the scanned application",
			Category:    "Report",
			Value:       NotProvided,
			Destination: &r.Version,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Tool name shown in the report title",
			Category:    "Report",
			Value:       report.DefaultTitle,
			Sources:     cli.EnvVars("ZAPHIST_REPORT_TITLE"),
			Destination: &r.Title,
		},
		r.formatFlag(),
		r.timezoneFlag(),
		r.commentsFlag(),
	}
}

// DiffFlags returns the flags used when comparing two documents offline
func (r *Report) DiffFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "environment",
			Aliases:     []string{"e"},
			Usage:       "Environment shown in the report",
			Category:    "Report",
			Value:       NotProvided,
			Destination: &r.Environment,
		},
		&cli.StringFlag{
			Name:        "scantype",
			Aliases:     []string{"i"},
			Usage:       "Scan type shown in the report",
			Category:    "Report",
			Value:       NotProvided,
			Destination: &r.ScanType,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Tool name shown in the report title",
			Category:    "Report",
			Value:       report.DefaultTitle,
			Sources:     cli.EnvVars("ZAPHIST_REPORT_TITLE"),
			Destination: &r.Title,
		},
		r.formatFlag(),
		r.timezoneFlag(),
		r.commentsFlag(),
	}
}

// RenderFlags returns the flags shaping rendered reports without choosing an output format
func (r *Report) RenderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Tool name shown in the report title",
			Category:    "Report",
			Value:       report.DefaultTitle,
			Sources:     cli.EnvVars("ZAPHIST_REPORT_TITLE"),
			Destination: &r.Title,
		},
		r.timezoneFlag(),
		r.commentsFlag(),
	}
}

func (r *Report) formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "format",
		Usage:       "Output format (text, html, json, yaml)",
		Category:    "Report",
		Value:       string(report.FormatText),
		Sources:     cli.EnvVars("ZAPHIST_REPORT_FORMAT"),
		Destination: &r.Format,
	}
}

func (r *Report) timezoneFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "timezone",
		Usage:       "IANA time zone of report dates (e.g. Asia/Tokyo)",
		Category:    "Report",
		Value:       "UTC",
		Sources:     cli.EnvVars("ZAPHIST_TIMEZONE"),
		Destination: &r.Timezone,
	}
}

func (r *Report) commentsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "comments-file",
		Usage:       "YAML file overriding the comment of each classification",
		Category:    "Report",
		Sources:     cli.EnvVars("ZAPHIST_COMMENTS_FILE"),
		Destination: &r.CommentsFile,
	}
}

// Meta returns the snapshot metadata given on the command line
func (r *Report) Meta() model.SnapshotMeta {
	return model.SnapshotMeta{
		Environment: orNotProvided(r.Environment),
		ScanType:    orNotProvided(r.ScanType),
		Version:     orNotProvided(r.Version),
		ReportLink:  orNotProvided(r.ReportLink),
	}
}

// OutputFormat parses the configured output format
func (r *Report) OutputFormat() (report.Format, error) {
	format, err := report.ParseFormat(r.Format)
	if err != nil {
		return "", goerr.Wrap(err, "invalid report format", goerr.V("format", r.Format))
	}
	return format, nil
}

// Configure builds the row formatter and renderer, applying comment overrides
// when a comments file is given
func (r *Report) Configure() (*diff.Formatter, *report.Renderer, error) {
	formatter := diff.DefaultFormatter()
	if r.CommentsFile != "" {
		comments, err := LoadCommentsFromFile(r.CommentsFile)
		if err != nil {
			return nil, nil, err
		}
		formatter, err = diff.NewFormatter(comments)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "invalid comment overrides", goerr.V("path", r.CommentsFile))
		}
	}

	title := r.Title
	if title == "" {
		title = report.DefaultTitle
	}

	loc := time.UTC
	if r.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(r.Timezone)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "invalid timezone",
				goerr.V("timezone", r.Timezone),
				goerr.T(model.ErrTagValidation))
		}
	}

	return formatter, report.New(
		report.WithFormatter(formatter),
		report.WithTitle(title),
		report.WithLocation(loc),
	), nil
}

// LogValue returns structured log value
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("filename", r.Filename),
		slog.String("project", r.ProjectName),
		slog.String("environment", r.Environment),
		slog.String("scan_type", r.ScanType),
		slog.String("version", r.Version),
		slog.String("format", r.Format),
		slog.String("timezone", r.Timezone),
		slog.String("comments_file", r.CommentsFile),
	)
}

func orNotProvided(v string) string {
	if v == "" {
		return NotProvided
	}
	return v
}
