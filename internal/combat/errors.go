package combat

import (
	"errors"

	"github.com/samdwyer/mecharena/internal/entity"
)

// Rule violations. Submit returns these (possibly wrapped) and leaves the
// battle waiting for a corrected action.
var (
	ErrWrongTurnHolder    = errors.New("not the turn holder")
	ErrNoActionPoints     = errors.New("no action points left")
	ErrBattleComplete     = errors.New("battle already complete")
	ErrUnauthorizedAction = errors.New("online battle but action didn't come from server")
	ErrUnknownAction      = errors.New("unknown action")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrMissingTarget      = errors.New("missing target")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrMissingEquipment   = errors.New("missing equipment")
	ErrIllegalAction      = errors.New("action not allowed")
	ErrAIFailure          = errors.New("ai failure")
)

// Construction errors.
var (
	// ErrInvalidLoadout is returned when a side has no torso or legs, or
	// references parts that don't exist.
	ErrInvalidLoadout = entity.ErrInvalidLoadout
	// ErrInvalidPosition is returned when a side starts off the arena or on
	// the other side's tile.
	ErrInvalidPosition = errors.New("invalid starting position")
	// ErrNoBrain is returned when a side is AI controlled but no Brain was configured.
	ErrNoBrain = errors.New("ai player without a brain")
)
