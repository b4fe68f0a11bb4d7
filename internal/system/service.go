// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/validate"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// senderSystem is the journal sender for parameter changes.
const senderSystem = "system"

// Service implements journal browsing and parameter management.
type Service struct {
	logs       LogRepository
	parameters ParameterRepository
	journal    *Journal
}

func NewService(logs LogRepository, parameters ParameterRepository, journal *Journal) *Service {
	return &Service{logs: logs, parameters: parameters, journal: journal}
}

// ListLogs returns a page of journal entries, newest first.
func (service *Service) ListLogs(context context.Context, filter LogFilter, page pagination.Params) ([]*LogEntry, int, error) {
	if filter.Type != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldType, string(filter.Type), string(LogInfo), string(LogDebug), string(LogError))
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}

	entries, total, err := service.logs.List(context, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("system_service_list_logs_failed: %w", err)
	}
	return entries, total, nil
}

// GetParameter returns the named parameter.
func (service *Service) GetParameter(context context.Context, name string) (*Parameter, error) {
	return service.parameters.FindByName(context, strings.TrimSpace(name))
}

// ListParameters returns every parameter, or only the active ones.
func (service *Service) ListParameters(context context.Context, activeOnly bool) ([]*Parameter, error) {
	parameters, err := service.parameters.List(context, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("system_service_list_parameters_failed: %w", err)
	}
	return parameters, nil
}

// SetParameterInput holds the new state of a parameter.
type SetParameterInput struct {
	Name      string
	Value     string
	BoolValue bool
	IsActive  bool
}

// SetParameter creates or replaces a parameter and journals the change.
func (service *Service) SetParameter(context context.Context, input SetParameterInput) (*Parameter, error) {
	name := strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, MaxParameterNameLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	parameter := &Parameter{
		Name:      name,
		Value:     input.Value,
		BoolValue: input.BoolValue,
		IsActive:  input.IsActive,
	}

	err := service.journal.Track(context, senderSystem, "set_parameter", func() (string, error) {
		if err := service.parameters.Upsert(context, parameter); err != nil {
			return "", err
		}
		return "parameter=" + parameter.Name, nil
	})
	if err != nil {
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, fmt.Errorf("system_service_set_parameter_failed: %w", err)
	}

	return parameter, nil
}
