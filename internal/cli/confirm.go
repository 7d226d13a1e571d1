package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/journal"
)

// promptConfirmer asks on the command's input stream. Anything but y/yes
// declines, including end of input.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := bufferedInput(p.in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// confirmerFor returns a fixed yes for --yes and a prompt otherwise.
func confirmerFor(cmd *cobra.Command) journal.Confirmer {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return journal.Confirmed(true)
	}
	return promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
}

// readLine prompts for one line of input.
func readLine(cmd *cobra.Command, prompt string) string {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, _ := bufferedInput(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(line)
}

// inputs keeps one buffered reader per input stream so that successive
// prompts do not lose piped input to an earlier reader's buffer.
var inputs = map[io.Reader]*bufio.Reader{}

func bufferedInput(r io.Reader) *bufio.Reader {
	if br, ok := inputs[r]; ok {
		return br
	}
	br := bufio.NewReader(r)
	inputs[r] = br
	return br
}
