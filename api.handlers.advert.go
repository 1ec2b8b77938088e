package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// sendError logs the failure cause then sends the error response to the client.
func (api *APIHandler) sendError(ctx context.Context, w http.ResponseWriter, status int, message string, data interface{}, fields ...zap.Field) {
	requestID := GetValueFromContext(ctx, RequestIDContextKey)
	fields = append(fields, zap.String("request.id", requestID))
	api.logger.Error(message, fields...)
	errResp := NewAPIError(requestID, status, message, data)
	if err := WriteErrorResponse(ctx, w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// sendList sends a list of adverts along with its size.
func (api *APIHandler) sendList(ctx context.Context, w http.ResponseWriter, status int, message string, adverts []Advert) {
	requestID := GetValueFromContext(ctx, RequestIDContextKey)
	total := len(adverts)
	resp := GenericResponse(requestID, status, message, &total, adverts)
	if err := WriteResponse(ctx, w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// CreateAdvert godoc
// @Summary      Create an advert
// @Description  Stores a new advert and assigns its identifier.
// @Tags         adverts
// @Accept       json
// @Produce      json
// @Param        advert  body      Advert  true  "Advert without id"
// @Success      201     {object}  APIResponse
// @Failure      400     {object}  APIError
// @Failure      500     {object}  APIError
// @Router       /v1/adverts [post]
func (api *APIHandler) CreateAdvert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	advert := Advert{}
	ctx := r.Context()
	requestID := GetValueFromContext(ctx, RequestIDContextKey)
	if err := DecodeAdvertRequestBody(r, &advert); err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "failed to create the advert", advert, zap.Error(err))
		return
	}

	if err := ValidateAdvertRequestBody(&advert); err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "failed to create the advert", err.Error(), zap.Error(err))
		return
	}

	created, err := api.advertService.Add(ctx, advert)
	if err != nil {
		api.sendError(ctx, w, http.StatusInternalServerError, "failed to create the advert", advert, zap.Error(err))
		return
	}
	api.logger.Info("success to create advert", zap.Int("advert.id", created.ID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusCreated, "Advert created successfully.", nil, created)
	if err = WriteResponse(ctx, w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// CreateAdverts godoc
// @Summary      Create a batch of adverts
// @Description  Stores all adverts in order. Either all adverts are created or none.
// @Tags         adverts
// @Accept       json
// @Produce      json
// @Param        adverts  body      []Advert  true  "Adverts without id"
// @Success      201      {object}  APIResponse
// @Failure      400      {object}  APIError
// @Failure      500      {object}  APIError
// @Router       /v1/adverts/batch [post]
func (api *APIHandler) CreateAdverts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var adverts []Advert
	ctx := r.Context()
	requestID := GetValueFromContext(ctx, RequestIDContextKey)
	if err := DecodeAdvertsBatchRequestBody(r, &adverts); err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "failed to create the adverts", EmptyData, zap.Error(err))
		return
	}

	if err := ValidateAdvertsBatchRequestBody(adverts); err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "failed to create the adverts", err.Error(), zap.Error(err))
		return
	}

	created, err := api.advertService.AddMany(ctx, adverts)
	if err != nil {
		api.sendError(ctx, w, http.StatusInternalServerError, "failed to create the adverts", EmptyData, zap.Error(err))
		return
	}
	api.logger.Info("success to create adverts", zap.Int("adverts.count", len(created)), zap.String("request.id", requestID))
	api.sendList(ctx, w, http.StatusCreated, "Adverts created successfully.", created)
}

// GetAllAdverts godoc
// @Summary      List adverts
// @Tags         adverts
// @Produce      json
// @Success      200  {object}  APIResponse
// @Failure      500  {object}  APIError
// @Router       /v1/adverts [get]
func (api *APIHandler) GetAllAdverts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	adverts, err := api.advertService.GetAll(ctx)
	if err != nil {
		api.sendError(ctx, w, http.StatusInternalServerError, "failed to get all adverts", EmptyData, zap.Error(err))
		return
	}
	api.logger.Debug("success to get all adverts", zap.String("request.id", GetValueFromContext(ctx, RequestIDContextKey)))
	api.sendList(ctx, w, http.StatusOK, "All adverts fetched successfully.", adverts)
}

// GetAdvertsByCategory godoc
// @Summary      List adverts of a category
// @Tags         adverts
// @Produce      json
// @Param        category  path      string  true  "Exact category name"
// @Success      200       {object}  APIResponse
// @Failure      500       {object}  APIError
// @Router       /v1/adverts/category/{category} [get]
func (api *APIHandler) GetAdvertsByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	category := ps.ByName("category")
	adverts, err := api.advertService.GetByCategory(ctx, category)
	if err != nil {
		api.sendError(ctx, w, http.StatusInternalServerError, "failed to get adverts by category", EmptyData,
			zap.String("advert.category", category), zap.Error(err))
		return
	}
	api.logger.Debug("success to get adverts by category",
		zap.String("advert.category", category),
		zap.String("request.id", GetValueFromContext(ctx, RequestIDContextKey)),
	)
	api.sendList(ctx, w, http.StatusOK, "Adverts fetched successfully.", adverts)
}

// GetAdvertsByMaxPrice godoc
// @Summary      List adverts priced at most maxPrice
// @Tags         adverts
// @Produce      json
// @Param        maxPrice  query     number  true  "Inclusive upper price bound"  minimum(0)
// @Success      200       {object}  APIResponse
// @Failure      400       {object}  APIError
// @Failure      500       {object}  APIError
// @Router       /v1/adverts/price [get]
func (api *APIHandler) GetAdvertsByMaxPrice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	raw := r.URL.Query().Get("maxPrice")
	maxPrice, err := ParseMaxPrice(raw)
	if err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "invalid max price", err.Error(), zap.String("advert.maxprice", raw))
		return
	}
	adverts, err := api.advertService.GetByMaxPrice(ctx, maxPrice)
	if err != nil {
		api.sendError(ctx, w, http.StatusInternalServerError, "failed to get adverts by price", EmptyData,
			zap.Float64("advert.maxprice", maxPrice), zap.Error(err))
		return
	}
	api.logger.Debug("success to get adverts by max price",
		zap.Float64("advert.maxprice", maxPrice),
		zap.String("request.id", GetValueFromContext(ctx, RequestIDContextKey)),
	)
	api.sendList(ctx, w, http.StatusOK, "Adverts fetched successfully.", adverts)
}

// UpdateAdvert godoc
// @Summary      Replace an advert
// @Tags         adverts
// @Accept       json
// @Produce      json
// @Param        id      path      int     true  "Advert id"  minimum(100000)  maximum(999999)
// @Param        advert  body      Advert  true  "New advert content"
// @Success      200     {object}  APIResponse
// @Failure      400     {object}  APIError
// @Failure      404     {object}  APIError
// @Failure      500     {object}  APIError
// @Router       /v1/adverts/{id} [put]
func (api *APIHandler) UpdateAdvert(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var advert Advert
	ctx := r.Context()
	requestID := GetValueFromContext(ctx, RequestIDContextKey)
	id, err := ParseAdvertID(ps.ByName("id"))
	if err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "advert id provided is not valid", err.Error(), zap.String("advert.id", ps.ByName("id")))
		return
	}

	if err = DecodeAdvertRequestBody(r, &advert); err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "failed to update the advert", advert, zap.Int("advert.id", id), zap.Error(err))
		return
	}

	if err = ValidateAdvertRequestBody(&advert); err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "failed to update the advert", err.Error(), zap.Int("advert.id", id), zap.Error(err))
		return
	}

	updated, err := api.advertService.Update(ctx, id, advert)
	if errors.Is(err, ErrAdvertNotFound) {
		api.sendError(ctx, w, http.StatusNotFound, "advert does not exist", EmptyData, zap.Int("advert.id", id))
		return
	}
	if err != nil {
		api.sendError(ctx, w, http.StatusInternalServerError, "failed to update the advert", advert, zap.Int("advert.id", id), zap.Error(err))
		return
	}
	api.logger.Info("success to update advert", zap.Int("advert.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Advert updated successfully.", nil, updated)
	if err = WriteResponse(ctx, w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteAdvert godoc
// @Summary      Delete an advert
// @Description  Deleting an unknown advert succeeds without effect.
// @Tags         adverts
// @Param        id  path  int  true  "Advert id"  minimum(100000)  maximum(999999)
// @Success      204
// @Failure      400  {object}  APIError
// @Failure      500  {object}  APIError
// @Router       /v1/adverts/{id} [delete]
func (api *APIHandler) DeleteAdvert(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	requestID := GetValueFromContext(ctx, RequestIDContextKey)
	id, err := ParseAdvertID(ps.ByName("id"))
	if err != nil {
		api.sendError(ctx, w, http.StatusBadRequest, "advert id provided is not valid", err.Error(), zap.String("advert.id", ps.ByName("id")))
		return
	}

	if err = api.advertService.Delete(ctx, id); err != nil {
		api.sendError(ctx, w, http.StatusInternalServerError, "failed to delete the advert", EmptyData, zap.Int("advert.id", id), zap.Error(err))
		return
	}
	api.logger.Info("success to delete advert", zap.Int("advert.id", id), zap.String("request.id", requestID))
	if err = WriteNoContentResponse(ctx, w); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
