package contact

import (
	"time"

	"github.com/google/uuid"

	"mediastudio/internal/models"
)

// NewInquiry builds the persisted record for sub. The id comes from the
// origin so every transport in a chain files the same inquiry; a fresh id is
// drawn when the origin has none.
func NewInquiry(sub *Submission, o Origin, now time.Time) models.Inquiry {
	id := o.InquiryID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return models.Inquiry{
		ID:          id,
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Company:     sub.Company,
		ServiceType: sub.ServiceType,
		Budget:      sub.Budget,
		Timeline:    sub.Timeline,
		Message:     sub.Message,
		Newsletter:  sub.Newsletter,
		ClientHash:  o.ClientHash,
		UserAgent:   o.UserAgent,
		CreatedAt:   now.UTC(),
	}
}
