package pets

import "pet-adoption/internal/platform/fault"

var (
	ErrInvalidInput = fault.New(fault.KindInvalidInput, "invalid_input", "invalid input")

	ErrPetNotFound = fault.New(fault.KindNotFound, "pet_not_found", "pet not found")

	ErrOwnerCannotAdopt        = fault.New(fault.KindAuthorization, "owner_cannot_adopt", "owner cannot schedule a visit with their own pet")
	ErrNotOwner                = fault.New(fault.KindAuthorization, "not_owner", "pet is registered to another user")
	ErrNotAuthorizedForRemoval = fault.New(fault.KindAuthorization, "not_authorized_for_removal", "only the owner or the adopter can remove the adopter")

	ErrAlreadyScheduled       = fault.New(fault.KindConflict, "already_scheduled", "a visit is already scheduled, please wait")
	ErrAdopterSlotTaken       = fault.New(fault.KindConflict, "adopter_slot_taken", "another adopter already has a visit scheduled")
	ErrNoAdopter              = fault.New(fault.KindConflict, "no_adopter", "pet has no adopter")
	ErrInvalidStateTransition = fault.New(fault.KindConflict, "invalid_state_transition", "transition not allowed in the current state")
	ErrConcurrentUpdate       = fault.New(fault.KindConflict, "concurrent_update", "pet was modified concurrently, reload and retry")
)
