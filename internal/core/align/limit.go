package align

import (
	"errors"
	"fmt"
)

// ErrTooLong is returned by CheckLimit when a text exceeds the token cap.
var ErrTooLong = errors.New("text exceeds token limit")

// CheckLimit reports whether text fits within maxTokens. Align itself accepts
// input of any size; callers use this to bound the quadratic cost up front.
// A maxTokens of zero or less disables the check.
func CheckLimit(text string, maxTokens int) error {
	if maxTokens <= 0 {
		return nil
	}
	if n := len(Tokenize(text)); n > maxTokens {
		return fmt.Errorf("%w: %d tokens, limit %d", ErrTooLong, n, maxTokens)
	}
	return nil
}
