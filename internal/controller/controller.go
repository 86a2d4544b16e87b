package controller

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/service"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService) {
	c := Controller{
		service: service,
	}
	e.POST("/add_product", c.AddProduct)
	e.GET("/list_products", c.GetProducts)
	e.PUT("/update_product/:id", c.UpdateProduct)
	e.DELETE("/delete_product/:id", c.DeleteProduct)
	e.DELETE("/clear_products", c.ClearProducts)
	e.POST("/upload_image", c.UploadImage)
}

func (c *Controller) AddProduct(e echo.Context) error {
	if _, err := e.FormParams(); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}
	// body fields only, query parameters are not product fields
	form := e.Request().PostForm

	price, err := parsePrice(form.Get("price"))
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrInvalidPrice)
	}

	payload := dto.ProductRequest{
		Name:     optionalFormValue(form, "name"),
		Price:    price,
		Category: optionalFormValue(form, "category"),
	}

	fileHeader, err := e.FormFile("image")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		} else {
			defer file.Close()
			payload.Image = &dto.ImageFile{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get(echo.HeaderContentType),
				Size:        fileHeader.Size,
				Content:     file,
			}
		}
	}

	resp, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusCreated, resp)
}

// optionalFormValue returns nil when key is absent from the form, so that a
// missing field is stored as null rather than as an empty string.
func optionalFormValue(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// parsePrice defaults a missing price to zero.
func parsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}

	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errs.ErrInvalidPrice
	}

	return price, nil
}

func (c *Controller) GetProducts(e echo.Context) error {
	responsePayload, err := c.service.GetProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, responsePayload)
}

func (c *Controller) UpdateProduct(e echo.Context) error {
	id := e.Param("id")

	payload := dto.ProductUpdateRequest{}
	if err := e.Echo().JSONSerializer.Deserialize(e, &payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	err := c.service.UpdateProduct(e.Request().Context(), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteMessageResponse(e, "Product updated")
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	id := e.Param("id")

	err := c.service.DeleteProduct(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteMessageResponse(e, "Product deleted")
}

func (c *Controller) ClearProducts(e echo.Context) error {
	err := c.service.ClearProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteMessageResponse(e, "All products deleted")
}

func (c *Controller) UploadImage(e echo.Context) error {
	fileHeader, err := e.FormFile("image")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrNoImage)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UploadImage").Msg("")
		return response.WriteErrorResponse(e, err)
	}
	defer file.Close()

	resp, err := c.service.UploadImage(e.Request().Context(), dto.ImageFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, resp)
}
