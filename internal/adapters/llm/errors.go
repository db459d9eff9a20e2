package llm

import "errors"

// Sentinel kinds for chat completion errors.
var (
	ErrDisabled   = errors.New("llm client disabled: no api key configured")
	ErrCompletion = errors.New("chat completion failed")
)
