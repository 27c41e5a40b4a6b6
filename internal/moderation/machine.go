package moderation

import (
	"fmt"

	"go_listar/internal/model"
)

// Decision is the computed outcome of a save or moderation action.
// PreviousStatus is only meaningful when Changed is true.
type Decision struct {
	Status         model.ListingStatus
	PreviousStatus model.ListingStatus
	Changed        bool
	RequiresReview bool
	Message        string
}

// OnCreate computes the initial status for a new listing.
//
// Admins get whatever they asked for (pending when nothing was asked).
// Owners may save a private draft; anything else goes to review.
// Unrecognized status strings clamp rather than fail the write.
func OnCreate(isAdmin bool, requested string) Decision {
	status := model.StatusPending
	req, ok := model.ParseListingStatus(requested)

	if isAdmin {
		if ok {
			status = req
		}
	} else if ok && req == model.StatusDraft {
		status = model.StatusDraft
	}

	return Decision{
		Status:         status,
		RequiresReview: status == model.StatusPending,
		Message:        createMessage(status),
	}
}

// OnUpdate computes the next status when a listing is edited.
//
// The review gate: an owner editing a published listing always reverts
// it to pending, no matter what was requested and no matter what changed.
// Owners of non-public listings may keep a draft or resubmit; everything
// else clamps to pending. Admins assign freely; an omitted or
// unrecognized status leaves the stored value alone.
func OnUpdate(isAdmin bool, current model.ListingStatus, requested string) Decision {
	req, ok := model.ParseListingStatus(requested)

	var status model.ListingStatus
	switch {
	case isAdmin:
		status = current
		if ok {
			status = req
		}
	case current == model.StatusPublish:
		status = model.StatusPending
	case ok && req == model.StatusDraft:
		status = model.StatusDraft
	default:
		status = model.StatusPending
	}

	d := Decision{
		Status:         status,
		RequiresReview: status == model.StatusPending,
		Message:        updateMessage(status),
	}
	if status != current {
		d.Changed = true
		d.PreviousStatus = current
	}
	return d
}

// OnModerate computes the outcome of an admin moderation action
// (approve/reject/draft). Unlike the save path, an unrecognized status
// here is a validation failure, not a clamp.
func OnModerate(current model.ListingStatus, requested string) (Decision, error) {
	req, ok := model.ParseListingStatus(requested)
	if !ok {
		return Decision{}, fmt.Errorf("invalid status %q", requested)
	}

	d := Decision{
		Status:         req,
		RequiresReview: req == model.StatusPending,
		Message:        "Listing status updated",
	}
	if req != current {
		d.Changed = true
		d.PreviousStatus = current
	}
	return d, nil
}

func createMessage(status model.ListingStatus) string {
	if status == model.StatusPending {
		return "Listing created and submitted for review"
	}
	return "Listing saved"
}

func updateMessage(status model.ListingStatus) string {
	if status == model.StatusPending {
		return "Listing updated and submitted for review"
	}
	return "Listing saved"
}
