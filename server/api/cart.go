/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
	"github.com/UnifyEM/storefront/server/data"
)

// invalidCoupon is the body returned for an unknown coupon code
var invalidCoupon = badRequest(schema.APIError{Error: "Invalid coupon code"})

// @Summary List cart items
// @Description Lists the items in the authenticated user's cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {array} schema.CartItem
// @Failure 401 {object} schema.APIError
// @Router /api/cart-items/ [get]
func (a *API) getCartItems(req *http.Request) userver.JResponse {
	items, err := a.data.CartItems(GetAuthDetails(req).Username)
	if err != nil {
		logInfo := logFields(req)
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2901, "error retrieving cart", logInfo)
		return serverError
	}
	return success(items)
}

// @Summary Add to cart
// @Description Adds a product to the cart. The quantity defaults to 1.
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body schema.CartItemCreateRequest true "Product and quantity"
// @Success 201 {object} schema.CartItem
// @Failure 400 {object} fieldErrors
// @Failure 401 {object} schema.APIError
// @Router /api/cart-items/ [post]
func (a *API) postCartItem(req *http.Request) userver.JResponse {
	request := schema.CartItemCreateRequest{Quantity: 1}
	if err := decodeBody(req, &request); err != nil {
		return malformed
	}

	logInfo := logFields(req)
	logInfo.Append(fields.NewField("product", request.Product), fields.NewField("quantity", request.Quantity))

	if request.Product == 0 {
		return badRequest(fieldErrors{"product": {fieldRequired}})
	}

	item, err := a.data.AddCartItem(GetAuthDetails(req).Username, request.Product, request.Quantity)
	switch {
	case errors.Is(err, data.ErrProductNotFound):
		return badRequest(fieldErrors{"product": {"Invalid pk \"" + itoa(request.Product) + "\" - object does not exist."}})
	case errors.Is(err, data.ErrInvalidQuantity):
		return badRequest(fieldErrors{"quantity": {"Ensure this value is greater than or equal to 1."}})
	case err != nil:
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2902, "error adding to cart", logInfo)
		return serverError
	}

	a.logger.Info(2903, "added to cart", logInfo)
	return userver.JResponse{HTTPCode: http.StatusCreated, JSONData: item}
}

// @Summary Remove from cart
// @Description Removes an item from the cart
// @Tags Cart
// @Security BearerAuth
// @Param id path int true "Cart item ID"
// @Success 204
// @Failure 401 {object} schema.APIError
// @Failure 404 {object} schema.APIError
// @Router /api/cart-items/{id}/ [delete]
func (a *API) deleteCartItem(req *http.Request) userver.JResponse {
	id, valid := pathID(req)
	if !valid {
		return notFound
	}

	logInfo := logFields(req)
	logInfo.AppendKV("item", id)

	err := a.data.RemoveCartItem(GetAuthDetails(req).Username, id)
	switch {
	case errors.Is(err, data.ErrCartItemNotFound):
		return notFound
	case err != nil:
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2904, "error removing cart item", logInfo)
		return serverError
	}

	a.logger.Info(2905, "removed from cart", logInfo)
	return userver.JResponse{HTTPCode: http.StatusNoContent}
}

// @Summary Cart summary
// @Description Returns the subtotal and number of units in the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} schema.CartSummary
// @Failure 401 {object} schema.APIError
// @Router /api/cart-items/summary/ [get]
func (a *API) getCartSummary(req *http.Request) userver.JResponse {
	summary, err := a.data.CartSummary(GetAuthDetails(req).Username)
	if err != nil {
		logInfo := logFields(req)
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2906, "error summarizing cart", logInfo)
		return serverError
	}
	return success(summary)
}

// @Summary Apply a coupon
// @Description Prices the cart with a coupon code. The cart is not changed.
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param coupon body schema.CouponRequest true "Coupon code"
// @Success 200 {object} schema.CouponResult
// @Failure 400 {object} schema.APIError
// @Failure 401 {object} schema.APIError
// @Router /api/apply-coupon/ [post]
func (a *API) postApplyCoupon(req *http.Request) userver.JResponse {
	var request schema.CouponRequest
	if err := decodeBody(req, &request); err != nil {
		return malformed
	}

	logInfo := logFields(req)
	logInfo.AppendKV("code", request.Code)

	result, err := a.data.ApplyCoupon(GetAuthDetails(req).Username, strings.TrimSpace(request.Code))
	switch {
	case errors.Is(err, data.ErrInvalidCoupon):
		a.logger.Info(2907, "invalid coupon code", logInfo)
		return invalidCoupon
	case err != nil:
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2908, "error applying coupon", logInfo)
		return serverError
	}
	return success(result)
}
