// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package system

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Darigraye/MEPHI-practice/internal/platform/request"
	"github.com/Darigraye/MEPHI-practice/internal/platform/respond"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Handler exposes the journal and parameters. Mount it behind an admin guard.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the system router.
//
//   - GET /logs              : journal page (filters: sender, login, type)
//   - GET /parameters        : all parameters (?active=true for active only)
//   - GET /parameters/{name} : one parameter
//   - PUT /parameters/{name} : create or replace a parameter
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/logs", handler.listLogs)
	router.Get("/parameters", handler.listParameters)
	router.Get("/parameters/{name}", handler.getParameter)
	router.Put("/parameters/{name}", handler.setParameter)

	return router
}

type parameterRequest struct {
	Value     string `json:"value"`
	BoolValue bool   `json:"bool_value"`
	IsActive  *bool  `json:"is_active"`
}

func (handler *Handler) listLogs(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	query := request.URL.Query()

	entries, total, err := handler.service.ListLogs(request.Context(), LogFilter{
		Sender: query.Get("sender"),
		Login:  query.Get("login"),
		Type:   LogType(query.Get("type")),
	}, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) listParameters(writer http.ResponseWriter, request *http.Request) {
	activeOnly, _ := strconv.ParseBool(request.URL.Query().Get("active"))

	parameters, err := handler.service.ListParameters(request.Context(), activeOnly)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, parameters)
}

func (handler *Handler) getParameter(writer http.ResponseWriter, request *http.Request) {
	parameter, err := handler.service.GetParameter(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, parameter)
}

func (handler *Handler) setParameter(writer http.ResponseWriter, request *http.Request) {
	var input parameterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	parameter, err := handler.service.SetParameter(request.Context(), SetParameterInput{
		Name:      requestutil.Param(request, "name"),
		Value:     input.Value,
		BoolValue: input.BoolValue,
		IsActive:  isActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, parameter)
}
