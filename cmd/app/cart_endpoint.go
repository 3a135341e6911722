package main

import (
	"net/http"
	"strconv"

	"CartStoreAPI/internal/middleware"
	"CartStoreAPI/internal/model"
	"CartStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type cartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService, ss *services.SessionService) {
	p := g.Group("/carts")

	// resolveCart binds the request's session token to its one active cart,
	// creating cart and token as needed, and writes the token back.
	resolveCart := func(c echo.Context) (*model.Cart, error) {
		cart, token, err := ss.Resolve(c.Request().Context(), middleware.SessionToken(c))
		if err != nil {
			return nil, err
		}
		middleware.SetSessionToken(c, token)
		return cart, nil
	}

	// GET current cart
	p.GET("", func(c echo.Context) error {
		cart, err := resolveCart(c)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		resp, err := cs.Get(c.Request().Context(), cart.CartID)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusOK, resp)
	})

	// SET item quantity (replace semantics)
	p.POST("", func(c echo.Context) error {
		cart, err := resolveCart(c)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		req := new(cartItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		resp, err := cs.SetItem(c.Request().Context(), cart.CartID, req.ProductID, req.Qty)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusCreated, resp)
	})

	// ADD quantity to item (additive semantics)
	p.POST("/add_item", func(c echo.Context) error {
		cart, err := resolveCart(c)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		req := new(cartItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		resp, err := cs.AddItem(c.Request().Context(), cart.CartID, req.ProductID, req.Qty)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusOK, resp)
	})

	// REMOVE item
	p.DELETE("/:product_id", func(c echo.Context) error {
		cart, err := resolveCart(c)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		}
		resp, err := cs.RemoveItem(c.Request().Context(), cart.CartID, productID)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusOK, resp)
	})
}
