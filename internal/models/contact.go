package models

import "time"

// ContactMessage is a submission from the public contact form.
// Messages are immutable once created and read-only for staff.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceOffering is an entry of the studio's service catalog, loaded
// from the services file at startup.
type ServiceOffering struct {
	ID          int64  `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Active      bool   `yaml:"active" json:"active"`
	SortOrder   int64  `yaml:"sort_order" json:"sort_order"`
}
