// Package term handles interactive operator prompts.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// affirmative is the only reply that approves a gated action.
const affirmative = "y"

// ErrDeclined reports that the operator did not approve a gated action.
var ErrDeclined = errors.New("confirmation declined")

// Confirm shows the pending action on w, reads one line from r and approves
// only the exact reply "y". Any other reply, an empty line or an unreadable
// input stream all decline.
func Confirm(r io.Reader, w io.Writer, action string) error {
	fmt.Fprintf(w, "About to run: %s\nProceed? (y/n): ", action)

	line, _ := bufio.NewReader(r).ReadString('\n')
	if strings.TrimRight(line, "\r\n") != affirmative {
		return ErrDeclined
	}
	return nil
}
