package valuetester

import (
	"fmt"
	"reflect"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
)

// checkRangeValue compares two ranges lockstep: size equality is checked
// first; a mismatch is reported as a single failure and halts
// element-level comparison. Equal sizes iterate and recursively invoke
// the same kind on each element pair, prefixing the description with the
// element's zero-based index.
func checkRangeValue(kind checkkind.Kind, logger *checklog.Logger, obtained, predicted reflect.Value, cfg config) bool {
	lenA, lenB := obtained.Len(), predicted.Len()
	if lenA != lenB {
		logger.Fail(fmt.Sprintf("range size mismatch: obtained has %d element(s), predicted has %d\n", lenA, lenB))
		return false
	}

	allPass := true
	for i := 0; i < lenA; i++ {
		description := fmt.Sprintf("[%d]", i)
		if !checkValue(kind, description, logger, obtained.Index(i), predicted.Index(i), cfg) {
			allPass = false
		}
	}
	return allPass
}
