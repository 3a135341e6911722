package main

import (
	"net/http"
	"strconv"

	"CartStoreAPI/internal/model"
	"CartStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type productRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func registerProductRoutes(g *echo.Group, ps *services.ProductService) {

	// LIST products
	g.GET("/products", func(c echo.Context) error {
		list, err := ps.List(c.Request().Context())
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		if list == nil {
			list = []model.Product{}
		}
		return c.JSON(http.StatusOK, list)
	})

	// GET product
	g.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		p, err := ps.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusOK, p)
	})

	// CREATE
	g.POST("/products", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		p, err := ps.Create(c.Request().Context(), req.Name, req.Price)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusCreated, p)
	})

	// UPDATE
	g.PUT("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		p, err := ps.Update(c.Request().Context(), id, req.Name, req.Price)
		if err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusOK, p)
	})

	// DELETE
	g.DELETE("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := ps.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(httpStatusFromErr(err))
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
