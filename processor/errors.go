package processor

import "errors"

// ErrEmptyNarration means segmentation produced zero slides: there is
// nothing to render or speak, so the product fails before any synthesis or
// rendering is attempted.
var ErrEmptyNarration = errors.New("narration is empty")

// ErrNoNarrationSource means the job carried no narration and no transcript
// provider is configured.
var ErrNoNarrationSource = errors.New("no narration and no transcript provider configured")
