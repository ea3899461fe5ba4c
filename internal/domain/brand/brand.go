// Package brand holds the client brands the agency works for.
package brand

import "time"

type Sector string

const (
	SectorTechnology    Sector = "technology"
	SectorRetail        Sector = "retail"
	SectorHealthcare    Sector = "healthcare"
	SectorFinance       Sector = "finance"
	SectorEducation     Sector = "education"
	SectorEntertainment Sector = "entertainment"
	SectorFood          Sector = "food"
	SectorAutomotive    Sector = "automotive"
	SectorRealEstate    Sector = "real_estate"
	SectorTravel        Sector = "travel"
	SectorFashion       Sector = "fashion"
	SectorSports        Sector = "sports"
)

var validSectors = map[Sector]bool{
	SectorTechnology: true, SectorRetail: true, SectorHealthcare: true, SectorFinance: true,
	SectorEducation: true, SectorEntertainment: true, SectorFood: true, SectorAutomotive: true,
	SectorRealEstate: true, SectorTravel: true, SectorFashion: true, SectorSports: true,
}

func (s Sector) IsValid() bool { return validSectors[s] }

type Contact struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Email string `json:"email" yaml:"email" validate:"required,email"`
	Phone string `json:"phone" yaml:"phone"`
}

type Brand struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Sector         Sector    `json:"sector" yaml:"sector"`
	Website        string    `json:"website" yaml:"website"`
	Description    string    `json:"description" yaml:"description"`
	PrimaryContact Contact   `json:"primaryContact" yaml:"primaryContact"`
	CreatedAt      time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Sector         *Sector  `json:"sector,omitempty" validate:"omitempty,brand_sector"`
	Website        *string  `json:"website,omitempty"`
	Description    *string  `json:"description,omitempty"`
	PrimaryContact *Contact `json:"primaryContact,omitempty"`
}

func (p Patch) Apply(b *Brand) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Sector != nil {
		b.Sector = *p.Sector
	}
	if p.Website != nil {
		b.Website = *p.Website
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.PrimaryContact != nil {
		b.PrimaryContact = *p.PrimaryContact
	}
}

// DeletePolicy decides what happens to records that reference a deleted brand.
type DeletePolicy string

const (
	// DeleteAllowOrphans removes the brand and leaves references dangling.
	DeleteAllowOrphans DeletePolicy = "allow_orphans"
	// DeleteReject refuses while anything still references the brand.
	DeleteReject DeletePolicy = "reject"
	// DeleteCascade removes referencing tickets, resources and submissions first.
	DeleteCascade DeletePolicy = "cascade"
)

func (p DeletePolicy) IsValid() bool {
	switch p {
	case DeleteAllowOrphans, DeleteReject, DeleteCascade:
		return true
	}
	return false
}
