package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// CommentsConfig overrides the comment templates attached to comparison rows.
// Each template is a text/template string evaluated against the formatted row.
type CommentsConfig struct {
	Comments map[types.Classification]string `yaml:"comments"`
}

// Validate validates the comments configuration
func (c *CommentsConfig) Validate() error {
	if len(c.Comments) == 0 {
		return goerr.New("at least one comment is required", goerr.T(ErrTagValidation))
	}

	for cls, tmpl := range c.Comments {
		if !cls.IsValid() {
			return goerr.New("unknown classification in comments",
				goerr.V("classification", cls),
				goerr.T(ErrTagValidation))
		}
		if tmpl == "" {
			return goerr.New("comment must not be empty",
				goerr.V("classification", cls),
				goerr.T(ErrTagValidation))
		}
	}

	return nil
}
