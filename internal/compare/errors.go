package compare

import "errors"

// ErrSuperseded marks a fetch whose (tickers, range) parameters were replaced
// while it was still in flight. Its resolution is discarded, never surfaced.
var ErrSuperseded = errors.New("fetch superseded by a newer view change")
