package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/repository/memory"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGateway struct {
	uploadErr error
}

func (g *fakeGateway) Upload(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
	if g.uploadErr != nil {
		return "", g.uploadErr
	}
	return g.SignedURL(filename)
}

func (g *fakeGateway) SignedURL(name string) (string, error) {
	return "https://store.test/images/" + name + "?sig=fresh", nil
}

type ControllerTestSuite struct {
	suite.Suite
	server  *echo.Echo
	repo    *memory.ProductRepository
	gateway *fakeGateway
}

func (s *ControllerTestSuite) SetupTest() {
	s.repo = memory.NewProductRepository()
	s.gateway = &fakeGateway{}

	s.server = echo.New()
	CreateProductController(s.server.Group(""), service.CreateProductService(s.repo, s.gateway, nil))
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)
	return rec
}

func (s *ControllerTestSuite) decode(rec *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func multipartRequest(method, target string, fields map[string]string, fileField, filename, content string) (*http.Request, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(content)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, nil
}

func (s *ControllerTestSuite) addProduct(fields map[string]string) string {
	req, err := multipartRequest(http.MethodPost, "/add_product", fields, "", "", "")
	s.Require().NoError(err)

	rec := s.do(req)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body map[string]interface{}
	s.decode(rec, &body)
	return body["product_id"].(string)
}

func (s *ControllerTestSuite) TestAddProduct() {
	type TestCase struct {
		Name           string
		Fields         map[string]string
		File           string
		ExpectedStatus int
		AssertResponse func(s *ControllerTestSuite, body map[string]interface{})
	}

	testCases := []TestCase{
		{
			Name:           "Without image",
			Fields:         map[string]string{"name": "Widget", "price": "9.99", "category": "Tools"},
			ExpectedStatus: http.StatusCreated,
			AssertResponse: func(s *ControllerTestSuite, body map[string]interface{}) {
				s.Equal("Product added", body["message"])
				s.IsType("", body["product_id"])
				s.NotEmpty(body["product_id"])
				s.Contains(body, "imageUrl")
				s.Nil(body["imageUrl"])
			},
		},
		{
			Name:           "With image",
			Fields:         map[string]string{"name": "Widget", "price": "9.99", "category": "Tools"},
			File:           "my widget.png",
			ExpectedStatus: http.StatusCreated,
			AssertResponse: func(s *ControllerTestSuite, body map[string]interface{}) {
				s.Equal("https://store.test/images/my widget.png?sig=fresh", body["imageUrl"])
			},
		},
		{
			Name:           "Missing price defaults to zero",
			Fields:         map[string]string{"name": "Freebie", "category": "Promo"},
			ExpectedStatus: http.StatusCreated,
		},
		{
			Name:           "Invalid price",
			Fields:         map[string]string{"name": "Widget", "price": "cheap"},
			ExpectedStatus: http.StatusBadRequest,
			AssertResponse: func(s *ControllerTestSuite, body map[string]interface{}) {
				s.Contains(body, "error")
			},
		},
		{
			Name:           "Negative price",
			Fields:         map[string]string{"name": "Widget", "price": "-1"},
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			fileField := ""
			if tc.File != "" {
				fileField = "image"
			}

			req, err := multipartRequest(http.MethodPost, "/add_product", tc.Fields, fileField, tc.File, "png-bytes")
			s.Require().NoError(err)

			rec := s.do(req)
			s.Equal(tc.ExpectedStatus, rec.Code)

			if tc.AssertResponse != nil {
				var body map[string]interface{}
				s.decode(rec, &body)
				tc.AssertResponse(s, body)
			}
		})
	}
}

func (s *ControllerTestSuite) TestAddProductURLEncoded() {
	form := url.Values{"name": {"Widget"}, "price": {"9.99"}, "category": {"Tools"}}
	req := httptest.NewRequest(http.MethodPost, "/add_product", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := s.do(req)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *ControllerTestSuite) TestAddProductImageUploadFailure() {
	s.gateway.uploadErr = errors.New("store unavailable")

	req, err := multipartRequest(http.MethodPost, "/add_product", map[string]string{"name": "Widget"}, "image", "widget.png", "png")
	s.Require().NoError(err)

	rec := s.do(req)
	s.Equal(http.StatusCreated, rec.Code)

	var body map[string]interface{}
	s.decode(rec, &body)
	s.Nil(body["imageUrl"])
}

func (s *ControllerTestSuite) TestListProducts() {
	s.addProduct(map[string]string{"name": "Widget", "price": "9.99", "category": "Tools"})

	rec := s.do(httptest.NewRequest(http.MethodGet, "/list_products", nil))
	s.Equal(http.StatusOK, rec.Code)

	var body []map[string]interface{}
	s.decode(rec, &body)
	s.Require().Len(body, 1)
	s.IsType("", body[0]["_id"])
	s.Equal("Widget", body[0]["name"])
	s.Equal(9.99, body[0]["price"])
	s.Equal("Tools", body[0]["category"])
	s.Nil(body[0]["imageUrl"])
}

func (s *ControllerTestSuite) TestListProductsMissingFormFieldsAreNull() {
	s.addProduct(map[string]string{"price": "1"})

	rec := s.do(httptest.NewRequest(http.MethodGet, "/list_products", nil))
	s.Equal(http.StatusOK, rec.Code)

	var body []map[string]interface{}
	s.decode(rec, &body)
	s.Require().Len(body, 1)
	s.Contains(body[0], "name")
	s.Nil(body[0]["name"])
	s.Contains(body[0], "category")
	s.Nil(body[0]["category"])
}

func (s *ControllerTestSuite) TestListProductsAfterUntypedUpdate() {
	id := s.addProduct(map[string]string{"name": "Widget", "price": "9.99"})
	s.addProduct(map[string]string{"name": "Gadget", "price": "2"})

	req := httptest.NewRequest(http.MethodPut, "/update_product/"+id, strings.NewReader(`{"price": "12.5", "color": "red"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	s.Require().Equal(http.StatusOK, s.do(req).Code)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/list_products", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body []map[string]interface{}
	s.decode(rec, &body)
	s.Require().Len(body, 2)
	s.Equal(id, body[0]["_id"])
	s.Equal("12.5", body[0]["price"])
	s.Equal("red", body[0]["color"])
	s.Equal("Gadget", body[1]["name"])
	s.Equal(2.0, body[1]["price"])
}

func (s *ControllerTestSuite) TestListProductsEmpty() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/list_products", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *ControllerTestSuite) TestUpdateProduct() {
	id := s.addProduct(map[string]string{"name": "Widget", "price": "9.99", "category": "Tools"})

	req := httptest.NewRequest(http.MethodPut, "/update_product/"+id, strings.NewReader(`{"_id": "x", "price": 12.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := s.do(req)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"message": "Product updated"}`, rec.Body.String())

	objectID, err := primitive.ObjectIDFromHex(id)
	s.Require().NoError(err)
	product, ok := s.repo.GetProduct(objectID)
	s.Require().True(ok)
	s.Equal(objectID, product["_id"])
	s.Equal(12.5, product["price"])
	s.Equal("Widget", product["name"])
	s.Equal("Tools", product["category"])
}

func (s *ControllerTestSuite) TestUpdateProductErrors() {
	type TestCase struct {
		Name           string
		ID             string
		Body           string
		ExpectedStatus int
		ExpectedBody   string
	}

	testCases := []TestCase{
		{
			Name:           "Unknown id",
			ID:             primitive.NewObjectID().Hex(),
			Body:           `{"price": 1}`,
			ExpectedStatus: http.StatusNotFound,
			ExpectedBody:   `{"error": "Product not found"}`,
		},
		{
			Name:           "Malformed id",
			ID:             "not-an-id",
			Body:           `{"price": 1}`,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   `{"error": "Invalid product id"}`,
		},
		{
			Name:           "Malformed body",
			ID:             primitive.NewObjectID().Hex(),
			Body:           `[1, 2]`,
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			req := httptest.NewRequest(http.MethodPut, "/update_product/"+tc.ID, strings.NewReader(tc.Body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

			rec := s.do(req)
			s.Equal(tc.ExpectedStatus, rec.Code)
			if tc.ExpectedBody != "" {
				s.JSONEq(tc.ExpectedBody, rec.Body.String())
			}
		})
	}
}

func (s *ControllerTestSuite) TestDeleteProduct() {
	id := s.addProduct(map[string]string{"name": "Widget"})

	rec := s.do(httptest.NewRequest(http.MethodDelete, "/delete_product/"+id, nil))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"message": "Product deleted"}`, rec.Body.String())

	rec = s.do(httptest.NewRequest(http.MethodDelete, "/delete_product/"+id, nil))
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error": "Product not found"}`, rec.Body.String())
}

func (s *ControllerTestSuite) TestClearProducts() {
	s.addProduct(map[string]string{"name": "a"})
	s.addProduct(map[string]string{"name": "b"})

	rec := s.do(httptest.NewRequest(http.MethodDelete, "/clear_products", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"message": "All products deleted"}`, rec.Body.String())

	rec = s.do(httptest.NewRequest(http.MethodGet, "/list_products", nil))
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *ControllerTestSuite) TestUploadImageWithEmptyFilename() {
	req, err := multipartRequest(http.MethodPost, "/upload_image", nil, "image", "", "png")
	s.Require().NoError(err)

	rec := s.do(req)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error": "No image uploaded"}`, rec.Body.String())
}

func (s *ControllerTestSuite) TestUploadImage() {
	req, err := multipartRequest(http.MethodPost, "/upload_image", nil, "image", "widget.png", "png")
	s.Require().NoError(err)

	rec := s.do(req)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"image_url": "https://store.test/images/widget.png?sig=fresh"}`, rec.Body.String())
}

func (s *ControllerTestSuite) TestUploadImageWithoutFile() {
	req, err := multipartRequest(http.MethodPost, "/upload_image", map[string]string{"name": "x"}, "", "", "")
	s.Require().NoError(err)

	rec := s.do(req)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error": "No image uploaded"}`, rec.Body.String())
}

func (s *ControllerTestSuite) TestUploadImageFailure() {
	s.gateway.uploadErr = errors.New("store unavailable")

	req, err := multipartRequest(http.MethodPost, "/upload_image", nil, "image", "widget.png", "png")
	s.Require().NoError(err)

	rec := s.do(req)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error": "store unavailable"}`, rec.Body.String())
}
