package cli

import (
	"errors"
	"strconv"

	"github.com/hhsksonu/kpcli/internal/client/api"
)

// messageFor turns an API failure into a line fit for the terminal. Errors
// without a server payload fall back to their plain Error string.
func messageFor(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message(apiErr.Error())
	}
	return err.Error()
}

// parseID parses the single numeric argument commands like "doc <id>" take.
func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
