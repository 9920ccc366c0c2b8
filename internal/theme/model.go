package theme

import (
	"time"

	"github.com/google/uuid"
)

// Layout selects which document template an invoice renders with.
type Layout string

const (
	LayoutCompact  Layout = "compact"
	LayoutStandard Layout = "standard"
	LayoutDetailed Layout = "detailed"
)

// LogoPosition controls the header alignment on rendered documents.
type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoRight  LogoPosition = "right"
	LogoCenter LogoPosition = "center"
)

// ValidLayout reports whether l is one of the accepted values.
func ValidLayout(l Layout) bool {
	switch l {
	case LayoutCompact, LayoutStandard, LayoutDetailed:
		return true
	}
	return false
}

// ValidLogoPosition reports whether p is one of the accepted values.
func ValidLogoPosition(p LogoPosition) bool {
	switch p {
	case LogoLeft, LogoRight, LogoCenter:
		return true
	}
	return false
}

// Theme is the single invoice template configuration row per owner.
type Theme struct {
	ID             uuid.UUID    `json:"id"`
	OwnerID        uuid.UUID    `json:"owner_id"`
	PrimaryColor   string       `json:"primary_color"`
	SecondaryColor string       `json:"secondary_color"`
	AccentColor    string       `json:"accent_color"`
	FontFamily     string       `json:"font_family"`
	Layout         Layout       `json:"layout"`
	LogoPosition   LogoPosition `json:"logo_position"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Default returns the theme provisioned for owners who never customised one.
func Default(ownerID uuid.UUID) Theme {
	return Theme{
		OwnerID:        ownerID,
		PrimaryColor:   "#007AFF",
		SecondaryColor: "#f8f9fa",
		AccentColor:    "#34C759",
		FontFamily:     "Inter",
		Layout:         LayoutStandard,
		LogoPosition:   LogoRight,
	}
}
