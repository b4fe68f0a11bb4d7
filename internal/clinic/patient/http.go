// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package patient

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Darigraye/MEPHI-practice/internal/platform/middleware"
	requestutil "github.com/Darigraye/MEPHI-practice/internal/platform/request"
	"github.com/Darigraye/MEPHI-practice/internal/platform/respond"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Handler implements the HTTP layer for patients.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/patients. Every route
// requires authentication; creation requires the researcher role.
//
//   - GET  /                         : page of patients (?q= searches names)
//   - POST /                         : create
//   - GET  /{id}                     : one patient
//   - GET  /by-history/{history_number} : one patient by history number
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Get("/by-history/{history_number}", handler.getByHistoryNumber)

	router.With(middleware.RequireRole(sec.RoleResearcher)).Post("/", handler.create)

	return router
}

type createRequest struct {
	HistoryNumber int64  `json:"history_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Patronymic    string `json:"patronymic"`
	BirthDate     string `json:"birth_date"`
	Sex           *int   `json:"sex"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	patients, total, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, patients, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patient, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, patient)
}

func (handler *Handler) getByHistoryNumber(writer http.ResponseWriter, request *http.Request) {
	number, err := requestutil.Int64Param(request, FieldHistoryNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patient, err := handler.service.GetByHistoryNumber(request.Context(), number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, patient)
}

/*
POST /api/v1/patients

Response:
  - 201: Patient with content_hash and change_state ADDED
  - 400: Validation failure
  - 409: History number already registered
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patient, err := handler.service.Create(request.Context(), CreateInput{
		HistoryNumber: input.HistoryNumber,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Patronymic:    input.Patronymic,
		BirthDate:     input.BirthDate,
		Sex:           input.Sex,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, patient)
}
