package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

type Persona string

const (
	PersonaChef    Persona = "chef"
	PersonaDrill   Persona = "drill"
	PersonaZen     Persona = "zen"
	PersonaSparkle Persona = "sparkle"
)

func (p Persona) Validate() error {
	switch p {
	case PersonaChef, PersonaDrill, PersonaZen, PersonaSparkle:
		return nil
	default:
		return fmt.Errorf("unsupported persona %q", string(p))
	}
}

// Area is a user-named physical zone. It exclusively owns its sessions;
// deleting an area cascades to sessions and their tasks.
type Area struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	Persona   Persona
	// FirstVisionPath is set once, by the first dream-vision session.
	FirstVisionPath string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Area) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return a.Persona.Validate()
}

// HasFirstVision reports whether the area already has a first-impression
// artifact from a previous dream-vision session.
func (a Area) HasFirstVision() bool {
	return a.FirstVisionPath != ""
}
