package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm prints a yes/no prompt and reads one line from in. Only "y"
// and "yes" (any case) count as yes; EOF or anything else is no.
func confirm(in io.Reader, out io.Writer, format string, args ...interface{}) (bool, error) {
	fmt.Fprintf(out, format+" [y/N]: ", args...)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
