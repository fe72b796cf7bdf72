package progress

import "errors"

// ErrCorrupt marks progress state that cannot be parsed or carries an
// unknown status. It is fatal: callers must surface it rather than treat the
// store as empty, since continuing without reliable claim state could let
// two instances process the same item.
var ErrCorrupt = errors.New("progress store corrupt")
