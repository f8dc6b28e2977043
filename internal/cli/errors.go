package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/service"
	"github.com/MKhiriev/campus-archive/internal/validators"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required when not running in a terminal")
	ErrNothingToUpdate     = errors.New("nothing to update: pass at least one field flag")
)

// describeError renders err for the terminal: backend details when the
// backend gave one, the validation reason for client-side checks.
func describeError(err error) string {
	var te *adapter.TransportError
	switch {
	case errors.Is(err, service.ErrNotSignedIn):
		return "not signed in, run 'campus login'"
	case errors.Is(err, adapter.ErrNetwork):
		return "network unavailable or server unreachable"
	case errors.As(err, &te) && te.StatusCode != 0:
		return fmt.Sprintf("%s (HTTP %d)", te.Detail, te.StatusCode)
	}
	return err.Error()
}

func parseID(arg string) (int64, error) {
	v, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", validators.ErrInvalidID, arg)
	}
	return v, nil
}
