// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package schema

// LogTable represents the 'al_log' journal table.
type LogTable struct {
	Table       string
	ID          string
	Sender      string
	Type        string
	Action      string
	Description string
	Login       string
	Status      string
	CreatedAt   string
}

// Log is the schema definition for al_log.
var Log = LogTable{
	Table:       "al_log",
	ID:          "id",
	Sender:      "object_sender",
	Type:        "log_type",
	Action:      "action_text",
	Description: "description",
	Login:       "al_username",
	Status:      "status_type",
	CreatedAt:   "t_cdatetime",
}

func (t LogTable) Columns() []string {
	return []string{t.ID, t.Sender, t.Type, t.Action, t.Description, t.Login, t.Status, t.CreatedAt}
}

// ParameterTable represents the 'al_parameter' table.
type ParameterTable struct {
	Table     string
	ID        string
	Name      string
	Value     string
	BoolValue string
	CreatedAt string
	IsActive  string
}

// Parameter is the schema definition for al_parameter.
var Parameter = ParameterTable{
	Table:     "al_parameter",
	ID:        "id",
	Name:      "parameter_name",
	Value:     "parameter_value",
	BoolValue: "parameter_value_bool",
	CreatedAt: "t_cdatetime",
	IsActive:  "t_isactive",
}

func (t ParameterTable) Columns() []string {
	return []string{t.ID, t.Name, t.Value, t.BoolValue, t.CreatedAt, t.IsActive}
}
