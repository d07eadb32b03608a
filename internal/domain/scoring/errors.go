package scoring

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid score rule configuration")
	ErrIncompleteData       = errors.New("fixture has no official result yet")
	ErrInvalidBonus         = errors.New("invalid bonus award")
	ErrUnknownTemplate      = errors.New("unknown rule template")
)
