package synth

import (
	"errors"
	"fmt"
)

// ErrNonUniqueText matches any *NonUniqueTextError via errors.Is
var ErrNonUniqueText = errors.New("synth: text is not unique")

// NonUniqueTextError reports a highlighted text whose every window also occurs in the background.
// No literal substring can select it without selecting background texts too
type NonUniqueTextError struct {
	Text string
}

func (e *NonUniqueTextError) Error() string {
	return fmt.Sprintf("%q is not unique, typing it will highlight other texts as well", e.Text)
}

// Is lets errors.Is(err, ErrNonUniqueText) succeed
func (e *NonUniqueTextError) Is(target error) bool { return target == ErrNonUniqueText }
