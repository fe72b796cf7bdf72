// Package identity produces the per-process instance tag recorded on
// progress transitions. The tag combines the OS process id with a random
// salt so that two runs on different machines (which may share pids) remain
// distinguishable in the progress file. Uniqueness is best effort; the tag
// is informational and never used for lock ownership.
package identity

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Instance identifies one coordinator process.
type Instance string

// New generates an instance identity for the current process. Call it once
// at startup and pass the value down; components must not mint their own.
func New() Instance {
	salt := uuid.New()
	return Instance(fmt.Sprintf("%d-%s", os.Getpid(), hex.EncodeToString(salt[:4])))
}

func (i Instance) String() string {
	return string(i)
}
