package dto

import "time"

type CreateInput struct {
	Name    string
	Icon    string
	Color   string
	Persona string
}

type AreaOutput struct {
	ID              string
	Name            string
	Icon            string
	Color           string
	Persona         string
	FirstVisionPath string
	CreatedAt       time.Time
}
