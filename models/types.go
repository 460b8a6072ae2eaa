// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package models

import "time"

// Vote value constants
const (
	VoteYes = "yes"
	VoteNo  = "no"
)

// User role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ConfirmationThreshold is the number of yes votes that confirms a day.
const ConfirmationThreshold = 3

// Request types

type VoteRequest struct {
	Vote string `json:"vote"`
}

// Only the fields present in the body are applied. There is no dayNumber
// field: the day being edited always keeps its key.
type DayPatch struct {
	GameName       *string `json:"gameName,omitempty"`
	Time           *string `json:"time,omitempty"`
	Host           *string `json:"host,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	IsSpecialEvent *bool   `json:"isSpecialEvent,omitempty"`
}

// Zero values fall back to the default schedule.
type InitDaysRequest struct {
	Length int      `json:"length,omitempty"`
	Games  []string `json:"games,omitempty"`
	Hosts  []string `json:"hosts,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Day     *Day   `json:"day,omitempty"`
}

type DaysResponse struct {
	Success bool  `json:"success"`
	Days    []Day `json:"days"`
}

type DayDetailResponse struct {
	Success bool  `json:"success"`
	Day     Day   `json:"day"`
	Tally   Tally `json:"tally"`
}

type SessionResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
}

type NextSessionResponse struct {
	StartsAt     time.Time `json:"startsAt"`
	SecondsUntil int64     `json:"secondsUntil"`
	StartsIn     string    `json:"startsIn"`
}

// Domain types

type Vote struct {
	User      string    `json:"user"`
	Vote      string    `json:"vote"`
	CreatedAt Timestamp `json:"createdAt"`
}

type Day struct {
	DayNumber      int       `json:"dayNumber"`
	GameName       string    `json:"gameName"`
	Time           string    `json:"time"`
	Host           string    `json:"host"`
	Notes          string    `json:"notes"`
	IsSpecialEvent bool      `json:"isSpecialEvent"`
	Votes          []Vote    `json:"votes"`
	IsConfirmed    bool      `json:"isConfirmed"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// Tally summarizes the votes of a single day.
type Tally struct {
	Yes    int `json:"yes"`
	No     int `json:"no"`
	Needed int `json:"needed"` // yes votes still missing; 0 once confirmed
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	Role         string    `json:"role"`
	CreatedAt    Timestamp `json:"createdAt"`
}

// PublicUser is the part of a User that is safe to send to clients.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
