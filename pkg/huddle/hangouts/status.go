package hangouts

import "github.com/huddleup/huddle/pkg/huddle/models"

// HangoutStatus represents the derived state of a hangout
type HangoutStatus string

const (
	StatusPending   HangoutStatus = "pending"
	StatusConfirmed HangoutStatus = "confirmed"
	StatusCancelled HangoutStatus = "cancelled"
)

// DeriveStatus recomputes a hangout's status from its current responses and
// the group's current member count, so status can flip as membership changes.
// Confirmed when more than half the members are going, cancelled when more
// than half are not going, pending otherwise.
func DeriveStatus(rsvps []models.HangoutRSVP, memberCount int) HangoutStatus {
	if memberCount <= 0 {
		return StatusPending
	}

	var going, notGoing int
	for _, rsvp := range rsvps {
		switch rsvp.Status {
		case models.RSVPGoing:
			going++
		case models.RSVPNotGoing:
			notGoing++
		}
	}

	if going*2 > memberCount {
		return StatusConfirmed
	}
	if notGoing*2 > memberCount {
		return StatusCancelled
	}
	return StatusPending
}
