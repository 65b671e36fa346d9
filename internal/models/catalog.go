package models

// Sede is a physical clinic location.
type Sede struct {
	SedeID  string `json:"sede_id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Active  bool   `json:"active"`
}

type Service struct {
	ServiceID       string `json:"service_id"`
	SedeID          string `json:"sede_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          bool   `json:"active"`
}

type Professional struct {
	ProfessionalID string `json:"professional_id"`
	SedeID         string `json:"sede_id"`
	Name           string `json:"name"`
	Specialty      string `json:"specialty,omitempty"`
	Active         bool   `json:"active"`
}
