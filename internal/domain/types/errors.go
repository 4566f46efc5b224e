package types

import "errors"

// ErrTeamNotFound is returned when a team code is absent from the
// current snapshot.
var ErrTeamNotFound = errors.New("team not found")
