// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CareerStatus is the hiring state of a job opening.
type CareerStatus string

const (
	CareerStatusDraft  CareerStatus = "DRAFT"
	CareerStatusOpen   CareerStatus = "OPEN"
	CareerStatusClosed CareerStatus = "CLOSED"
)

// Valid reports whether s is a known career status.
func (s CareerStatus) Valid() bool {
	switch s {
	case CareerStatusDraft, CareerStatusOpen, CareerStatusClosed:
		return true
	}
	return false
}

// CareerType is the employment type of a job opening.
type CareerType string

const (
	CareerTypeFullTime   CareerType = "FULL_TIME"
	CareerTypePartTime   CareerType = "PART_TIME"
	CareerTypeContract   CareerType = "CONTRACT"
	CareerTypeInternship CareerType = "INTERNSHIP"
)

// Valid reports whether t is a known employment type.
func (t CareerType) Valid() bool {
	switch t {
	case CareerTypeFullTime, CareerTypePartTime, CareerTypeContract, CareerTypeInternship:
		return true
	}
	return false
}

// Career is a job opening.
type Career struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Type        CareerType   `json:"type"`
	Department  *string      `json:"department"`
	Salary      *string      `json:"salary"`
	Status      CareerStatus `json:"status"`
	PublishedAt *time.Time   `json:"publishedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
