package controllers

import (
	"context"
	"fmt"
	"medicalcv-service/internal/app/services/core/listing"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/requests"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"
	"medicalcv-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ResourceController serves the list screen and forms of one resource type.
// P is the request body that maps onto the resource model T.
type ResourceController[T any, P any, PP interface {
	*P
	requests.Payload[T]
}] struct {
	Log        *zap.Logger
	Resource   string
	Categories []string
	Timeout    time.Duration
	controller func(*workspace.Workspace) *listing.Controller[T]
}

func NewResourceController[T any, P any, PP interface {
	*P
	requests.Payload[T]
}](logger *zap.Logger, resource string, categories []string, timeoutInSeconds int, controller func(*workspace.Workspace) *listing.Controller[T]) *ResourceController[T, P, PP] {
	return &ResourceController[T, P, PP]{
		Log:        logger,
		Resource:   resource,
		Categories: categories,
		Timeout:    requestTimeout(timeoutInSeconds),
		controller: controller,
	}
}

func (ctrl *ResourceController[T, P, PP]) criteria(r *http.Request) listing.Criteria {
	query := r.URL.Query()
	criteria := listing.Criteria{
		Search:     query.Get(constvars.URLQueryParamSearch),
		Categories: make(map[string]string, len(ctrl.Categories)),
	}
	for _, key := range ctrl.Categories {
		if value := query.Get(key); value != "" {
			criteria.Categories[key] = value
		}
	}
	return criteria
}

func (ctrl *ResourceController[T, P, PP]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T

	// Bind body to request
	request := PP(new(P))
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return zero, false
	}

	// Validate request
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return zero, false
	}
	return request.ToModel(), true
}

// List loads the collection on first use or when reload=true, then applies
// the search and category filters from the query string. The optional page
// and pageSize parameters slice the filtered result.
func (ctrl *ResourceController[T, P, PP]) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}
	controller := ctrl.controller(ws)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	reload, _ := strconv.ParseBool(r.URL.Query().Get(constvars.URLQueryParamReload))
	if reload || !controller.Loaded() {
		if err := controller.Load(ctx); err != nil {
			writeError(ctrl.Log, w, err)
			return
		}
	}

	result := controller.ResultFor(ctrl.criteria(r))

	response := responses.List[T]{
		Items:           result.Items,
		Total:           len(result.Items),
		BaseTotal:       result.BaseTotal,
		CategoryOptions: result.CategoryOptions,
		ReadOnly:        !result.Scope.CanMutate(),
	}
	if result.LoadErr != nil {
		response.LoadError = result.LoadErr.Error()
	}

	message := fmt.Sprintf(constvars.GetListSuccess, ctrl.Resource)
	page, pageSize := pageParams(r)
	if pageSize == 0 {
		utils.BuildSuccessResponse(w, constvars.StatusOK, message, response)
		return
	}

	start, end := pageBounds(len(response.Items), page, pageSize)
	response.Items = response.Items[start:end]
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, message, &responses.Pagination{
		Total:    response.Total,
		Page:     page,
		PageSize: pageSize,
	}, response)
}

func pageParams(r *http.Request) (page, pageSize int) {
	pageSize, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPageSize))
	if err != nil || pageSize < 0 {
		return 1, 0
	}
	page, err = strconv.Atoi(r.URL.Query().Get(constvars.QueryParamPage))
	if err != nil || page < 1 {
		page = 1
	}
	return page, pageSize
}

// pageBounds returns the slice bounds of page within total items. Pages past
// the end are empty.
func pageBounds(total, page, pageSize int) (start, end int) {
	if pageSize <= 0 || page < 1 {
		return total, total
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if page > pages {
		return total, total
	}
	start = (page - 1) * pageSize
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

func (ctrl *ResourceController[T, P, PP]) Get(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	item, err := ctrl.controller(ws).Get(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.GetDetailSuccess, ctrl.Resource), item)
}

func (ctrl *ResourceController[T, P, PP]) Create(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}
	payload, ok := ctrl.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	created, err := ctrl.controller(ws).Create(ctx, payload)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, fmt.Sprintf(constvars.CreateSuccess, ctrl.Resource), created)
}

func (ctrl *ResourceController[T, P, PP]) Update(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}
	payload, ok := ctrl.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	updated, err := ctrl.controller(ws).Update(ctx, chi.URLParam(r, constvars.URLParamID), payload)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.UpdateSuccess, ctrl.Resource), updated)
}

// DeleteIntent opens the confirmation gate. The delete itself runs only from
// ConfirmationController.Confirm.
func (ctrl *ResourceController[T, P, PP]) DeleteIntent(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	snapshot, err := ws.RequestDelete(ctx, ctrl.Resource, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK,
		fmt.Sprintf(constvars.DeleteIntentSuccess, snapshot.Target.DisplayName),
		confirmationResponse(snapshot))
}

func (ctrl *ResourceController[T, P, PP]) AuditTrail(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	entries, err := ws.AuditTrail(ctx, ctrl.Resource, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAuditTrailSuccess, entries)
}
