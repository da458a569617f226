package models

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Pathway step kinds. A step points at another content entity by id.
const (
	STEP_FORMATION  = "formation"
	STEP_RESOURCE   = "resource"
	STEP_ASSESSMENT = "assessment"
)

// Pathway is an org-scoped curriculum: an ordered outline of steps.
type Pathway struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	CreatorID      uint           `gorm:"not null;index" json:"creator_id"`
	Title          string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=2,max=255"`
	Description    string         `gorm:"type:text" json:"description" validate:"max=5000"`
	Published      bool           `gorm:"default:false" json:"published"`
	Steps          []PathwayStep  `gorm:"constraint:OnDelete:CASCADE" json:"steps,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// PathwayStep is one entry in a pathway outline. Position is 0-based and
// dense within a pathway.
type PathwayStep struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PathwayID uint      `gorm:"not null;index" json:"pathway_id"`
	Position  int       `gorm:"not null" json:"position"`
	Kind      string    `gorm:"type:varchar(50);not null" json:"kind"`
	RefID     uint      `gorm:"not null" json:"ref_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Pathway) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// ValidStepKind reports whether kind names a step target type.
func ValidStepKind(kind string) bool {
	switch kind {
	case STEP_FORMATION, STEP_RESOURCE, STEP_ASSESSMENT:
		return true
	}
	return false
}

// ReorderSteps moves the step with the given id to the requested position and
// renumbers all steps densely. The relative order of the remaining steps is
// preserved (stable). Returns false if stepID is not part of the slice.
func ReorderSteps(steps []PathwayStep, stepID uint, newPos int) bool {
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Position < steps[j].Position
	})

	idx := -1
	for i := range steps {
		if steps[i].ID == stepID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	if newPos < 0 {
		newPos = 0
	}
	if newPos > len(steps)-1 {
		newPos = len(steps) - 1
	}

	moved := steps[idx]
	rest := append(steps[:idx:idx], steps[idx+1:]...)
	reordered := make([]PathwayStep, 0, len(steps))
	reordered = append(reordered, rest[:newPos]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[newPos:]...)

	for i := range reordered {
		reordered[i].Position = i
	}
	copy(steps, reordered)
	return true
}
