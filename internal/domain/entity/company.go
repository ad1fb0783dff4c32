package entity

import "time"

// Company representa una organización/tenant del sistema. Todo el resto de entidades cuelga de ella.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si la empresa fue eliminada lógicamente.
func (c *Company) IsDeleted() bool { return c.DeletedAt != nil }
