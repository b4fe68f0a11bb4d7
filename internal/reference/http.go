// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Darigraye/MEPHI-practice/internal/platform/apperr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/middleware"
	requestutil "github.com/Darigraye/MEPHI-practice/internal/platform/request"
	"github.com/Darigraye/MEPHI-practice/internal/platform/respond"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// Handler implements the HTTP layer for dictionaries.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/terms.
//
//   - GET  /by-id/{id}     : one term by id
//   - GET  /{kind}         : page of terms (?q= searches name and code)
//   - GET  /{kind}/{code}  : one term by code
//   - POST /{kind}         : create (researcher and above)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/by-id/{id}", handler.getTerm)
	router.Get("/{kind}", handler.listTerms)
	router.Get("/{kind}/{code}", handler.getTermByCode)

	router.With(middleware.RequireRole(sec.RoleResearcher)).Post("/{kind}", handler.createTerm)

	return router
}

type createTermRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func kindParam(request *http.Request) (Kind, error) {
	kind, ok := ParseKind(requestutil.Param(request, FieldKind))
	if !ok {
		return "", apperr.NotFound("Dictionary")
	}
	return kind, nil
}

func (handler *Handler) listTerms(writer http.ResponseWriter, request *http.Request) {
	kind, err := kindParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	terms, total, err := handler.service.ListTerms(request.Context(), kind, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, terms, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getTermByCode(writer http.ResponseWriter, request *http.Request) {
	kind, err := kindParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	term, err := handler.service.GetTermByCode(request.Context(), kind, requestutil.Param(request, FieldCode))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, term)
}

func (handler *Handler) getTerm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	term, err := handler.service.GetTerm(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, term)
}

/*
POST /api/v1/terms/{kind}

Response:
  - 201: Term with its derived code and change stamp
  - 400: Missing or unusable name
  - 409: A term with the same code already exists in the dictionary
*/
func (handler *Handler) createTerm(writer http.ResponseWriter, request *http.Request) {
	kind, err := kindParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTermRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	term, err := handler.service.CreateTerm(request.Context(), CreateTermInput{
		Kind:        kind,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, term)
}
