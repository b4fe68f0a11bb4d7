// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package system owns the business journal (al_log) and the system parameter
dictionary (al_parameter).

The journal complements the structured slog output: every business action
that changes data writes a START row before it runs and a FINISH row after it
succeeds, attributed to the acting login. Failures are journalled with log
type E.
*/
package system

import "time"

// # Journal

// LogType classifies a journal entry.
type LogType string

const (
	LogInfo  LogType = "I"
	LogDebug LogType = "D"
	LogError LogType = "E"
)

// LogStatus marks the execution phase of the journalled action.
type LogStatus string

const (
	StatusStart  LogStatus = "S"
	StatusFinish LogStatus = "F"
)

// LogEntry is one row of the al_log journal.
type LogEntry struct {
	ID          int64     `json:"id"`
	Sender      string    `json:"sender"`
	Type        LogType   `json:"type"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	Login       string    `json:"login"`
	Status      LogStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// LogFilter narrows [Service.ListLogs]. Empty fields match everything.
type LogFilter struct {
	Sender string
	Login  string
	Type   LogType
}

// # Parameters

// Parameter is a named system setting.
type Parameter struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	BoolValue bool      `json:"bool_value"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Length limits mirrored from the al_log and al_parameter columns.
const (
	MaxSenderLen        = 50
	MaxActionLen        = 100
	MaxParameterNameLen = 50
)

// Field identifiers used in validation errors.
const (
	FieldName      = "name"
	FieldValue     = "value"
	FieldBoolValue = "bool_value"
	FieldType      = "type"
)
