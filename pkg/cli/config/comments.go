package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// LoadCommentsFromFile loads classification comment overrides from a YAML file
func LoadCommentsFromFile(path string) (*model.CommentsConfig, error) {
	if path == "" {
		return nil, goerr.New("comments file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "comments file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read comments file",
			goerr.V("path", path))
	}

	var config model.CommentsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML comments file",
			goerr.V("path", path),
			goerr.T(model.ErrTagValidation))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid comments file",
			goerr.V("path", path),
			goerr.T(model.ErrTagValidation))
	}

	return &config, nil
}
