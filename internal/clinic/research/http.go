// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package research

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Darigraye/MEPHI-practice/internal/platform/middleware"
	requestutil "github.com/Darigraye/MEPHI-practice/internal/platform/request"
	"github.com/Darigraye/MEPHI-practice/internal/platform/respond"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Handler implements the HTTP layer for researches.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/researches.
//
//   - GET  /by-patient/{patient_id}   : page of a patient's researches
//   - GET  /{id}                      : research with diagnoses and panel
//   - POST /                          : create (researcher)
//   - POST /{id}/diagnoses            : add a diagnosis (researcher)
//   - POST /{id}/immunophenotyping    : add a panel row (researcher)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/by-patient/{patient_id}", handler.listByPatient)
	router.Get("/{id}", handler.get)

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireRole(sec.RoleResearcher))
		router.Post("/", handler.create)
		router.Post("/{id}/diagnoses", handler.addDiagnosis)
		router.Post("/{id}/immunophenotyping", handler.addImmunophenotyping)
	})

	return router
}

type createRequest struct {
	PatientID    int64  `json:"patient_id"`
	ResearchDate string `json:"research_date"`
	Material     string `json:"material"`
}

type diagnosisRequest struct {
	Conclusion string `json:"conclusion"`
}

type immunophenotypingRequest struct {
	MarkerID        int64 `json:"marker_id"`
	MedicationID    int64 `json:"medication_id"`
	PositivePercent *int  `json:"percent_positive_cells"`
}

func (handler *Handler) listByPatient(writer http.ResponseWriter, request *http.Request) {
	patientID, err := requestutil.Int64Param(request, FieldPatientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	researches, total, err := handler.service.ListByPatient(request.Context(), patientID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, researches, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
POST /api/v1/researches

Response:
  - 201: Research with content_hash and change_state ADDED
  - 400: Validation failure or unknown patient
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	research, err := handler.service.Create(request.Context(), CreateInput{
		PatientID:    input.PatientID,
		ResearchDate: input.ResearchDate,
		Material:     input.Material,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, research)
}

func (handler *Handler) addDiagnosis(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input diagnosisRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	diagnosis, err := handler.service.AddDiagnosis(request.Context(), id, input.Conclusion)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, diagnosis)
}

func (handler *Handler) addImmunophenotyping(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input immunophenotypingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	row, err := handler.service.AddImmunophenotyping(request.Context(), id, ImmunophenotypingInput{
		MarkerID:        input.MarkerID,
		MedicationID:    input.MedicationID,
		PositivePercent: input.PositivePercent,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, row)
}
