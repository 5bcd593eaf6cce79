// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/catalogadmin/backend/internal/config"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/router"
	"github.com/catalogadmin/backend/internal/services"
	"github.com/catalogadmin/backend/internal/testutil"
	"github.com/catalogadmin/backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	store  *testutil.Store
	host   *testutil.FakeImageHost
	router *gin.Engine
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize())
	utils.SetJWTSecret("api-test-secret")
}

func (suite *APITestSuite) SetupTest() {
	cfg := &config.Config{
		JWT:       config.JWTConfig{SecretKey: "api-test-secret", TTLHours: 168},
		ImageHost: config.ImageHostConfig{Provider: "cloudinary"},
		Upload:    config.UploadConfig{MaxFiles: 5, MaxFileSize: 1 << 20},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	suite.store = testutil.NewStore()
	suite.host = testutil.NewFakeImageHost()
	authService := services.NewAuthService(suite.store.Admins(), cfg)
	productService := services.NewProductService(suite.store.Products(), suite.store.Admins(), suite.host)
	suite.router = router.New(cfg, authService, productService)
}

func (suite *APITestSuite) do(method, path, token string, body io.Reader, contentType string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func (suite *APITestSuite) postJSON(path string, data map[string]interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	jsonData, _ := json.Marshal(data)
	return suite.do(http.MethodPost, path, "", bytes.NewBuffer(jsonData), "application/json")
}

func (suite *APITestSuite) sendProduct(method, path, token string, fields map[string]string, tags ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	files := make([]testutil.File, 0, len(tags))
	for _, tag := range tags {
		files = append(files, testutil.File{Name: tag + ".jpg", ContentType: "image/jpeg", Data: testutil.JPEG(tag)})
	}
	body, contentType := testutil.MultipartBody(fields, files...)
	return suite.do(method, path, token, body, contentType)
}

func (suite *APITestSuite) login(name, email string) string {
	w, _ := suite.postJSON("/api/auth/register", map[string]interface{}{"name": name, "email": email, "password": "secret"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w, response := suite.postJSON("/api/auth/login", map[string]interface{}{"email": email, "password": "secret"})
	suite.Require().Equal(http.StatusOK, w.Code)
	return response["token"].(string)
}

func imageURLs(product interface{}) []string {
	var urls []string
	for _, u := range product.(map[string]interface{})["images"].([]interface{}) {
		urls = append(urls, u.(string))
	}
	return urls
}

func (suite *APITestSuite) TestHealth() {
	w, response := suite.do(http.MethodGet, "/health", "", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("healthy", response["status"])
}

func (suite *APITestSuite) TestRegisterAndLogin() {
	w, response := suite.postJSON("/api/auth/register", map[string]interface{}{
		"name":     "Ann",
		"email":    "ann@x.com",
		"password": "secret",
	})
	suite.Equal(http.StatusCreated, w.Code)
	admin := response["admin"].(map[string]interface{})
	suite.Equal("ann@x.com", admin["email"])
	suite.NotContains(admin, "password_hash")

	w, response = suite.postJSON("/api/auth/login", map[string]interface{}{"email": "ann@x.com", "password": "secret"})
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(response["token"])

	w, response = suite.postJSON("/api/auth/login", map[string]interface{}{"email": "ann@x.com", "password": "wrong"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_CREDENTIALS", response["code"])
}

func (suite *APITestSuite) TestRegisterDuplicateAndValidation() {
	suite.login("Ann", "ann@x.com")

	w, response := suite.postJSON("/api/auth/register", map[string]interface{}{"name": "Ann", "email": "ann@x.com", "password": "secret"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("CONFLICT", response["code"])

	w, response = suite.postJSON("/api/auth/register", map[string]interface{}{"name": "Bob", "email": "bob@x.com", "password": "abc"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", response["code"])
	suite.Equal("Password must be at least 5 characters long", response["message"])

	w, _ = suite.do(http.MethodPost, "/api/auth/register", "", bytes.NewBufferString("{"), "application/json")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestGetCurrentAdmin() {
	ann := suite.login("Ann", "ann@x.com")
	bob := suite.login("Bob", "bob@x.com")

	w, response := suite.do(http.MethodGet, "/api/auth/getCurrentAdmin", ann, nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Ann", response["name"])

	w, response = suite.do(http.MethodGet, "/api/auth/getCurrentAdmin", bob, nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("bob@x.com", response["email"])

	w, _ = suite.do(http.MethodGet, "/api/auth/getCurrentAdmin", "", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, _ = suite.do(http.MethodGet, "/api/auth/getCurrentAdmin", "not-a-token", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestProductLifecycle() {
	token := suite.login("Ann", "ann@x.com")

	w, response := suite.sendProduct(http.MethodPost, "/api/products/addProduct", token,
		map[string]string{"sku": "A1", "name": "Shoe", "price": "10"}, "img1", "img2")
	suite.Require().Equal(http.StatusCreated, w.Code)
	product := response["product"].(map[string]interface{})
	suite.Len(imageURLs(product), 2)
	id := product["id"].(string)

	w, response = suite.sendProduct(http.MethodPut, "/api/products/product/"+id, token,
		map[string]string{"removedImages": "ignored"}, "img3")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal([]string{testutil.URLFor(testutil.JPEG("img3"))}, imageURLs(response["product"]))

	w, response = suite.do(http.MethodGet, "/api/products/allProducts", token, nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(float64(1), response["totalProducts"])
	products := response["products"].([]interface{})
	suite.Require().Len(products, 1)
	suite.Equal("A1", products[0].(map[string]interface{})["sku"])
	suite.Equal("Shoe", products[0].(map[string]interface{})["name"])
	listed := products[0].(map[string]interface{})["images"].([]interface{})
	suite.Require().Len(listed, 1)
	image := listed[0].(map[string]interface{})
	suite.Equal(testutil.URLFor(testutil.JPEG("img3")), image["url"])
	suite.NotEmpty(image["id"])

	w, response = suite.do(http.MethodDelete, "/api/products/deleteProduct/"+id, token, nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Product deleted successfully", response["message"])
	suite.Equal(0, suite.store.ProductCount())
}

func (suite *APITestSuite) TestUpdatePriceOnlyClearsImages() {
	token := suite.login("Ann", "ann@x.com")

	_, response := suite.sendProduct(http.MethodPost, "/api/products/addProduct", token,
		map[string]string{"sku": "A1", "name": "Shoe", "price": "10"}, "img1")
	id := response["product"].(map[string]interface{})["id"].(string)

	w, response := suite.sendProduct(http.MethodPut, "/api/products/product/"+id, token, map[string]string{"price": "15.25"})
	suite.Require().Equal(http.StatusOK, w.Code)
	product := response["product"].(map[string]interface{})
	suite.Equal("A1", product["sku"])
	suite.Equal("Shoe", product["name"])
	suite.Equal("15.25", product["price"])
	suite.Empty(imageURLs(product))

	w, response = suite.sendProduct(http.MethodPut, "/api/products/product/"+id, token, map[string]string{"price": "1000000000"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", response["code"])

	w, response = suite.do(http.MethodGet, "/api/products/allProducts", token, nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	listed := response["products"].([]interface{})[0].(map[string]interface{})
	suite.Equal("15.25", listed["price"])
	suite.NotNil(listed["images"])
	suite.Empty(listed["images"])
}

func (suite *APITestSuite) TestProductsAreScopedToOwner() {
	ann := suite.login("Ann", "ann@x.com")
	bob := suite.login("Bob", "bob@x.com")

	_, response := suite.sendProduct(http.MethodPost, "/api/products/addProduct", ann,
		map[string]string{"sku": "A1", "name": "Shoe", "price": "10"}, "img1")
	id := response["product"].(map[string]interface{})["id"].(string)

	w, response := suite.do(http.MethodGet, "/api/products/allProducts", bob, nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(0), response["totalProducts"])
	suite.Empty(response["products"])

	w, response = suite.do(http.MethodDelete, "/api/products/deleteProduct/"+id, bob, nil, "")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", response["code"])

	w, _ = suite.sendProduct(http.MethodPut, "/api/products/product/"+id, bob, map[string]string{"name": "Mine"}, "img2")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(1, suite.store.ProductCount())
}

func (suite *APITestSuite) TestAddProductRejections() {
	token := suite.login("Ann", "ann@x.com")

	w, response := suite.sendProduct(http.MethodPost, "/api/products/addProduct", token,
		map[string]string{"sku": "A1", "name": "Shoe", "price": "10"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("All fields and images are required.", response["message"])

	body, contentType := testutil.MultipartBody(map[string]string{"sku": "A1", "name": "Shoe", "price": "10"},
		testutil.File{Name: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")})
	w, response = suite.do(http.MethodPost, "/api/products/addProduct", token, body, contentType)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", response["code"])

	w, _ = suite.sendProduct(http.MethodPost, "/api/products/addProduct", "",
		map[string]string{"sku": "A1", "name": "Shoe", "price": "10"}, "img1")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(0, suite.store.ProductCount())
}

func (suite *APITestSuite) TestAddProductUploadFailure() {
	token := suite.login("Ann", "ann@x.com")
	suite.host.FailOn(testutil.JPEG("broken"))

	w, response := suite.sendProduct(http.MethodPost, "/api/products/addProduct", token,
		map[string]string{"sku": "A1", "name": "Shoe", "price": "10"}, "fine", "broken")
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("UPLOAD_ERROR", response["code"])
	suite.Equal("Image upload failed", response["message"])
}

func (suite *APITestSuite) TestLocalizedErrors() {
	req := httptest.NewRequest(http.MethodGet, "/api/products/allProducts", nil)
	req.Header.Set("Accept-Language", "zh-TW,zh;q=0.9")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(i18n.T("zh_TW", i18n.KeyAuthRequired), response["message"])
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
