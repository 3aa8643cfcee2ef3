package hangouts

import (
	"time"

	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// HangoutResponse represents a hangout in API responses
type HangoutResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	ProposedBy  string            `json:"proposedBy"`
	CreatedAt   string            `json:"createdAt"`
	Responses   map[string]string `json:"responses"`
	Status      string            `json:"status"`
}

func hangoutToResponse(hangout models.Hangout, rsvps []models.HangoutRSVP, memberCount int) HangoutResponse {
	responses := make(map[string]string, len(rsvps))
	for _, rsvp := range rsvps {
		responses[rsvp.Username] = string(rsvp.Status)
	}

	return HangoutResponse{
		ID:          hangout.ID,
		Title:       hangout.Title,
		Date:        hangout.Date,
		Time:        hangout.Time,
		Location:    hangout.Location,
		Description: hangout.Description,
		ProposedBy:  hangout.ProposedBy,
		CreatedAt:   hangout.CreatedAt.UTC().Format(time.RFC3339),
		Responses:   responses,
		Status:      string(DeriveStatus(rsvps, memberCount)),
	}
}

// ListForGroup renders all hangouts in a group in proposal order.
// The member count feeds the status derivation of every hangout.
func ListForGroup(db *gorm.DB, groupID string, memberCount int) ([]HangoutResponse, error) {
	var hangoutRows []models.Hangout
	if err := db.Where("group_id = ?", groupID).Order("created_at").Find(&hangoutRows).Error; err != nil {
		return nil, err
	}

	views := make([]HangoutResponse, len(hangoutRows))
	for i, hangout := range hangoutRows {
		var rsvps []models.HangoutRSVP
		if err := db.Where("hangout_id = ?", hangout.ID).Order("id").Find(&rsvps).Error; err != nil {
			return nil, err
		}
		views[i] = hangoutToResponse(hangout, rsvps, memberCount)
	}
	return views, nil
}
