// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package cellimage

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Darigraye/MEPHI-practice/internal/platform/middleware"
	requestutil "github.com/Darigraye/MEPHI-practice/internal/platform/request"
	"github.com/Darigraye/MEPHI-practice/internal/platform/respond"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Handler implements the HTTP layer for cell images.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/cell-images.
//
//   - GET  /by-research/{research_id} : page of a research's images
//   - GET  /{id}                      : one image
//   - POST /                          : register an annotated image (researcher)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/by-research/{research_id}", handler.listByResearch)
	router.Get("/{id}", handler.get)
	router.With(middleware.RequireRole(sec.RoleResearcher)).Post("/", handler.create)

	return router
}

type createRequest struct {
	ResearchID        int64   `json:"research_id"`
	CellTypeID        int64   `json:"cell_type_id"`
	ImageKey          string  `json:"image_key"`
	Annotation        string  `json:"annotation"`
	CharacteristicIDs []int64 `json:"characteristic_ids"`
}

func (handler *Handler) listByResearch(writer http.ResponseWriter, request *http.Request) {
	researchID, err := requestutil.Int64Param(request, FieldResearchID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	images, total, err := handler.service.ListByResearch(request.Context(), researchID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, images, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	image, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, image)
}

/*
POST /api/v1/cell-images

Response:
  - 201: Image with content_hash and change_state ADDED
  - 400: Validation failure, unknown research or wrong term kind
  - 409: Image key already registered
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	image, err := handler.service.Create(request.Context(), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, image)
}
