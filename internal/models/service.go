// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceStatus controls whether a service is shown on the website.
type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "ACTIVE"
	ServiceStatusInactive ServiceStatus = "INACTIVE"
)

// Valid reports whether s is a known service status.
func (s ServiceStatus) Valid() bool {
	return s == ServiceStatusActive || s == ServiceStatusInactive
}

// Service is an offering listed on the marketing site.
type Service struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Icon        *string       `json:"icon"`
	Image       *string       `json:"image"`
	Status      ServiceStatus `json:"status"`
	Order       int           `json:"order"`
	PublishedAt *time.Time    `json:"publishedAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
