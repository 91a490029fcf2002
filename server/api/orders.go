//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
	"github.com/UnifyEM/storefront/server/data"
)

// @Summary Place an order
// @Description Turns the cart into an order and empties the cart
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param order body schema.OrderCreateRequest false "Optional coupon code"
// @Success 201 {object} schema.Order
// @Failure 400 {object} schema.APIError
// @Failure 401 {object} schema.APIError
// @Router /api/orders/ [post]
func (a *API) postOrder(req *http.Request) userver.JResponse {
	var request schema.OrderCreateRequest
	if err := decodeBody(req, &request); err != nil {
		return malformed
	}

	logInfo := logFields(req)

	order, err := a.data.PlaceOrder(GetAuthDetails(req).Username, request.Coupon)
	switch {
	case errors.Is(err, data.ErrInvalidCoupon):
		return invalidCoupon
	case errors.Is(err, data.ErrEmptyCart):
		return badRequest(schema.APIError{Error: "Cart is empty"})
	case err != nil:
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2911, "error placing order", logInfo)
		return serverError
	}

	return userver.JResponse{HTTPCode: http.StatusCreated, JSONData: order}
}

// @Summary List orders
// @Description Lists the authenticated user's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} schema.Order
// @Failure 401 {object} schema.APIError
// @Router /api/orders/ [get]
func (a *API) getOrders(req *http.Request) userver.JResponse {
	orders, err := a.data.Orders(GetAuthDetails(req).Username)
	if err != nil {
		logInfo := logFields(req)
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2912, "error retrieving orders", logInfo)
		return serverError
	}
	return success(orders)
}

// @Summary Get an order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} schema.Order
// @Failure 401 {object} schema.APIError
// @Failure 404 {object} schema.APIError
// @Router /api/orders/{id}/ [get]
func (a *API) getOrder(req *http.Request) userver.JResponse {
	id, valid := pathID(req)
	if !valid {
		return notFound
	}

	order, err := a.data.GetOrder(GetAuthDetails(req).Username, id)
	switch {
	case errors.Is(err, data.ErrOrderNotFound):
		return notFound
	case err != nil:
		logInfo := logFields(req)
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2913, "error retrieving order", logInfo)
		return serverError
	}
	return success(order)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
