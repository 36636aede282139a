package service

import "errors"

// Missing-entity errors: terminal for the request.
var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not in match")
)

// State-conflict errors: the request was well-formed but arrived in the
// wrong state. Callers should re-poll rather than fix their input.
var (
	ErrWrongPhase            = errors.New("operation not allowed in current phase")
	ErrAlreadyReady          = errors.New("player already readied up")
	ErrNotReadyPhase         = errors.New("cannot sync state after readying up")
	ErrSpellPending          = errors.New("an unresolved spell blocks this action")
	ErrSpellAlreadyActive    = errors.New("another spell resolution is already active")
	ErrNoActiveSpell         = errors.New("no active spell resolution")
	ErrNotSpellCaster        = errors.New("only the caster may progress a spell resolution")
	ErrSpellRollNotNeeded    = errors.New("spell does not require a roll")
	ErrSpellRollMissing      = errors.New("spell roll has not been submitted")
	ErrSpellAlreadyRolled    = errors.New("spell roll already submitted")
	ErrNotYourAttack         = errors.New("attack belongs to another player")
	ErrRollAlreadySubmitted  = errors.New("roll already submitted for this attack stat")
	ErrAlreadyCompleted      = errors.New("player already signaled completion")
	ErrRollsNotComplete      = errors.New("commit rolls are not complete")
)

// Validation errors: malformed submissions, rejected before any state is
// written.
var (
	ErrPlayerIDRequired    = errors.New("player id is required")
	ErrUnknownCard         = errors.New("submission references an unknown card")
	ErrCardConservation    = errors.New("submission must preserve the player's card set")
	ErrHandTooLarge        = errors.New("hand exceeds the maximum size")
	ErrBoardTooLarge       = errors.New("board exceeds the maximum size")
	ErrSlotOutOfRange      = errors.New("board slot index out of range")
	ErrDuplicateSlot       = errors.New("duplicate board slot index")
	ErrSpellCardOnBoard    = errors.New("spell cards cannot be placed on the board")
	ErrInvalidAttack       = errors.New("attack references an invalid slot or ability")
	ErrDuplicateAttack     = errors.New("multiple attacks declared from the same slot")
	ErrSummoningSickness   = errors.New("card cannot attack the turn it was summoned")
	ErrInvalidRollType     = errors.New("unknown roll type")
	ErrUnknownAttack       = errors.New("attack id does not match a pending attack")
	ErrCardNotInHand       = errors.New("card is not in the caster's hand")
	ErrNotSpellCard        = errors.New("card is not a spell")
	ErrInvalidAbility      = errors.New("selected ability index is invalid")
	ErrInvalidTarget       = errors.New("spell target is invalid")
	ErrTargetNotTaunting   = errors.New("enemy target must be the taunting card")
)

var conflictErrors = []error{
	ErrWrongPhase, ErrAlreadyReady, ErrNotReadyPhase, ErrSpellPending,
	ErrSpellAlreadyActive, ErrNoActiveSpell, ErrNotSpellCaster,
	ErrSpellRollNotNeeded, ErrSpellRollMissing, ErrSpellAlreadyRolled,
	ErrNotYourAttack, ErrRollAlreadySubmitted, ErrAlreadyCompleted,
	ErrRollsNotComplete,
}

var notFoundErrors = []error{ErrMatchNotFound, ErrPlayerNotFound}

// IsConflict reports whether the error is a state-conflict rejection.
func IsConflict(err error) bool {
	for _, e := range conflictErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether the error is a missing-entity rejection.
func IsNotFound(err error) bool {
	for _, e := range notFoundErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
