package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptUser displays a message and waits for a single-line response on in.
// Returns true only for a case-insensitive 'y'; every other response,
// including EOF, declines.
func promptUser(message string, in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, message)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y", nil
}
