//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"net/http"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/userver"
)

// @Summary List products
// @Description Lists the catalog, optionally filtered by SKU or name
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {array} schema.Product
// @Failure 401 {object} schema.APIError
// @Router /api/products/ [get]
func (a *API) getProducts(req *http.Request) userver.JResponse {
	products, err := a.data.Products(req.URL.Query().Get("search"))
	if err != nil {
		logInfo := logFields(req)
		logInfo.AppendKV("error", err.Error())
		a.logger.Error(2881, "error retrieving products", logInfo)
		return serverError
	}
	return success(products)
}

// @Summary List discounts
// @Description Lists the coupon codes
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {array} schema.Discount
// @Failure 401 {object} schema.APIError
// @Router /api/discounts/ [get]
func (a *API) getDiscounts(req *http.Request) userver.JResponse {
	discounts, err := a.data.Discounts()
	if err != nil {
		logInfo := logFields(req)
		logInfo.Append(fields.NewField("error", err.Error()))
		a.logger.Error(2882, "error retrieving discounts", logInfo)
		return serverError
	}
	return success(discounts)
}
