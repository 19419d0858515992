package service

import "errors"

// Pipeline error taxonomy. All three are fatal and non-retryable: the
// pipeline never salvages a partial render. Handlers translate them into
// user-facing responses with an error code; soft warnings (oversized
// embedded images) are logged in the sanitizer and never surface here.
var (
	// ErrRenderFailure marks a failure inside the layout engine itself.
	ErrRenderFailure = errors.New("document render failed")

	// ErrIntegrityFailure marks a rendered binary that is empty, below the
	// minimum plausible size, or structurally unreadable.
	ErrIntegrityFailure = errors.New("rendered document failed integrity check")

	// ErrEncodingFailure marks a transport encoding that came out empty or
	// implausibly short.
	ErrEncodingFailure = errors.New("document transport encoding failed")
)
