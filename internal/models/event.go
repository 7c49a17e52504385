package models

import (
	"strings"
	"time"
)

// Event is a listing owned by the events directory. The pipeline only reads it.
type Event struct {
	ID           string     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	VenueName    string     `json:"venue_name" db:"venue_name"`
	VenueAddress string     `json:"venue_address" db:"venue_address"`
	Category     string     `json:"category" db:"category"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" db:"end_date"`
	Price        string     `json:"price,omitempty" db:"price"`
	CoverImage   string     `json:"cover_image,omitempty" db:"cover_image"`
	ImageURL     string     `json:"image_url,omitempty" db:"image_url"`
	Thumbnail    string     `json:"thumbnail,omitempty" db:"thumbnail"`
	BookingURL   string     `json:"booking_url,omitempty" db:"booking_url"`
	AffiliateURL string     `json:"affiliate_url,omitempty" db:"affiliate_url"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

const dateLayout = "2006-01-02"

// Eligible reports whether the event may be turned into an article on the given day.
// Dates are compared as calendar days, the same way the start_date DATE column is queried.
func (e *Event) Eligible(today time.Time) bool {
	if !e.IsActive || strings.TrimSpace(e.AffiliateURL) == "" {
		return false
	}
	return e.StartDate.Format(dateLayout) >= today.Format(dateLayout)
}

// LocationText joins the venue fields used for location attribution.
func (e *Event) LocationText() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{e.VenueName, e.VenueAddress} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// PrimaryImage picks cover image, then image, then thumbnail.
func (e *Event) PrimaryImage() *string {
	for _, candidate := range []string{e.CoverImage, e.ImageURL, e.Thumbnail} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return &candidate
		}
	}
	return nil
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
