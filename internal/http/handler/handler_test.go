package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"foodhood/internal/http/middleware"
	"foodhood/internal/media"
	"foodhood/internal/model"
	"foodhood/internal/service"
	serviceMocks "foodhood/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userID  = snowflake.ID(175928847299117063)
	foodID  = snowflake.ID(175928847299117100)
	orderID = snowflake.ID(175928847299117200)
)

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, parts ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, p.name))
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		w, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func asUser(req *http.Request) *http.Request {
	req.Header.Set(middleware.CallerIDHeader, userID.String())
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{service.ErrFoodNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("wrapped: %w", service.ErrOrderNotFound), http.StatusNotFound, "NOT_FOUND"},
		{service.ErrPhotoNotFound, http.StatusNotFound, "NOT_FOUND"},
		{media.ErrSizeRequired, http.StatusLengthRequired, "SIZE_REQUIRED"},
		{fmt.Errorf("%w: 11 > 10", media.ErrPayloadTooLarge), http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{media.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Use(middleware.RequestID())
			app.Get("/", func(c *fiber.Ctx) error { return writeServiceError(c, tt.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), body.RequestID)
			assert.NotContains(t, body.Error.Message, "connection reset")
		})
	}
}

func TestListFoods(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodService)
	app := fiber.New()
	app.Get("/food", ListFoods(mockSvc))

	t.Run("success", func(t *testing.T) {
		foods := []model.Food{{ID: foodID, AuthorID: userID, Title: "Soup", Tags: []int64{1}}}
		mockSvc.On("List", mock.Anything).Return(foods, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/food", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var raw []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		require.Len(t, raw, 1)
		assert.Equal(t, foodID.String(), raw[0]["uid"], "ids are quoted decimals")
		assert.Equal(t, userID.String(), raw[0]["authorId"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return(nil, errors.New("db down")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/food", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateFood(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodService)
	app := fiber.New()
	app.Post("/food", middleware.CallerID(), CreateFood(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := model.FoodCreate{Title: "Bread", Tags: []int64{2, 3}, ValidityPeriod: 4}
		created := &model.Food{ID: foodID, AuthorID: userID, Title: "Bread", Tags: []int64{2, 3}, ValidityPeriod: 4}
		mockSvc.On("Create", mock.Anything, userID, in).Return(created, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/food", strings.NewReader(`{"title":"Bread","tags":[2,3],"validityPeriod":4}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Food
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, foodID, result.ID)
		assert.Equal(t, 0, result.ImageCount)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/food", strings.NewReader(`{"title":`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("no caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/food", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetFood(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodService)
	app := fiber.New()
	app.Get("/food/:foodId", GetFood(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, foodID).Return(&model.Food{ID: foodID, Title: "Rice"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/food/"+foodID.String(), nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Food
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "Rice", result.Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, foodID).Return(nil, service.ErrFoodNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/food/"+foodID.String(), nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/food/not-a-snowflake", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}

func TestAddFoodPhotos(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodService)
	app := fiber.New()
	app.Post("/food/:foodId/photos", AddFoodPhotos(mockSvc))
	path := "/food/" + foodID.String() + "/photos"

	t.Run("batch with a rejected part", func(t *testing.T) {
		body, ct := multipartBody(t,
			filePart{name: "a.png", contentType: "image/png", data: []byte("png-bytes")},
			filePart{name: "b.bin", data: []byte("junk")},
			filePart{name: "c.jpg", contentType: "image/jpeg", data: []byte("jpeg-bytes")},
		)

		matches := mock.MatchedBy(func(us []media.Upload) bool {
			return len(us) == 3 &&
				us[0].ContentType == "image/png" && string(us[0].Data) == "png-bytes" &&
				us[0].Size != nil && *us[0].Size == int64(len("png-bytes")) &&
				us[2].ContentType == "image/jpeg"
		})
		res := &service.PhotoBatchResult{
			Accepted: 2,
			Indices:  []int{0, 1},
			Rejected: []service.PhotoRejection{{Position: 1, Reason: "unsupported media type"}},
		}
		mockSvc.On("AddPhotos", mock.Anything, foodID, matches).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.PhotoBatchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, []int{0, 1}, result.Indices)
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, 1, result.Rejected[0].Position)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, path, nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("food not found", func(t *testing.T) {
		body, ct := multipartBody(t, filePart{name: "a.png", data: []byte("x")})
		mockSvc.On("AddPhotos", mock.Anything, foodID, mock.Anything).Return(nil, service.ErrFoodNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Nil(t, decodeError(t, resp).Partial)
		mockSvc.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		body, ct := multipartBody(t,
			filePart{name: "a.png", data: []byte("x")},
			filePart{name: "b.png", data: []byte("y")},
			filePart{name: "c.png", data: []byte("z")},
		)
		partial := &service.PhotoBatchResult{
			Accepted: 1,
			Indices:  []int{4},
			Rejected: []service.PhotoRejection{{Position: 1, Reason: "unsupported media type"}},
		}
		mockSvc.On("AddPhotos", mock.Anything, foodID, mock.Anything).Return(partial, errors.New("photo 2: upload to storage: timeout")).Once()

		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		payload := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", payload.Error.Code)
		require.NotNil(t, payload.Partial, "stored photos are reported")
		assert.Equal(t, 1, payload.Partial.Accepted)
		assert.Equal(t, []int{4}, payload.Partial.Indices)
		assert.Equal(t, 1, payload.Partial.Rejected[0].Position)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetFoodPhoto(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodService)
	app := fiber.New()
	app.Get("/food/:foodId/photos/:index", GetFoodPhoto(mockSvc))
	base := "/food/" + foodID.String() + "/photos/"

	t.Run("success", func(t *testing.T) {
		blob := &model.Blob{ContentType: "image/png", Data: []byte("pixels")}
		mockSvc.On("GetPhoto", mock.Anything, foodID, 2).Return(blob, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, base+"2", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		data, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "pixels", string(data))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("GetPhoto", mock.Anything, foodID, 9).Return(nil, service.ErrPhotoNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, base+"9", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid index", func(t *testing.T) {
		for _, idx := range []string{"abc", "-1"} {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, base+idx, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, idx)
			assert.Equal(t, "INVALID_INDEX", decodeError(t, resp).Error.Code)
		}
	})
}

func TestClaimFood(t *testing.T) {
	mockSvc := new(serviceMocks.MockOrderService)
	app := fiber.New()
	app.Get("/food/:foodId/order", middleware.CallerID(), ClaimFood(mockSvc))
	path := "/food/" + foodID.String() + "/order"

	t.Run("success", func(t *testing.T) {
		order := &model.Order{ID: orderID, FoodID: foodID, UserID: userID}
		mockSvc.On("Claim", mock.Anything, foodID, userID).Return(order, nil).Once()

		resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodGet, path, nil)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var raw map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		assert.Equal(t, orderID.String(), raw["uid"])
		assert.Equal(t, false, raw["received"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("food not found", func(t *testing.T) {
		mockSvc.On("Claim", mock.Anything, foodID, userID).Return(nil, service.ErrFoodNotFound).Once()

		resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodGet, path, nil)))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no caller", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestFoodStatus(t *testing.T) {
	mockSvc := new(serviceMocks.MockOrderService)
	app := fiber.New()
	app.Get("/food/:foodId/status", FoodStatus(mockSvc))
	path := "/food/" + foodID.String() + "/status"

	t.Run("success", func(t *testing.T) {
		orders := []model.Order{{ID: orderID, FoodID: foodID, UserID: userID, Received: true}}
		mockSvc.On("ListForFood", mock.Anything, foodID).Return(orders, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, orders, result)
		mockSvc.AssertExpectations(t)
	})

	t.Run("food not found", func(t *testing.T) {
		mockSvc.On("ListForFood", mock.Anything, foodID).Return(nil, service.ErrFoodNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListMyOrders(t *testing.T) {
	mockSvc := new(serviceMocks.MockOrderService)
	app := fiber.New()
	app.Get("/order", middleware.CallerID(), ListMyOrders(mockSvc))

	mockSvc.On("ListMine", mock.Anything, userID).Return([]model.Order{}, nil).Once()

	resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodGet, "/order", nil)))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(data))
	mockSvc.AssertExpectations(t)
}

func TestUpdateOrder(t *testing.T) {
	mockSvc := new(serviceMocks.MockOrderService)
	app := fiber.New()
	app.Put("/order/:orderId", middleware.CallerID(), UpdateOrder(mockSvc))
	path := "/order/" + orderID.String()

	t.Run("partial update", func(t *testing.T) {
		isSet := mock.MatchedBy(func(u model.OrderUpdate) bool {
			return u.Received != nil && *u.Received && u.Complete == nil
		})
		updated := &model.Order{ID: orderID, FoodID: foodID, UserID: userID, Received: true}
		mockSvc.On("Update", mock.Anything, orderID, userID, isSet).Return(updated, nil).Once()

		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{"received":true}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Received)
		assert.False(t, result.Complete)
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit false is forwarded", func(t *testing.T) {
		isFalse := mock.MatchedBy(func(u model.OrderUpdate) bool {
			return u.Complete != nil && !*u.Complete && u.Received == nil
		})
		mockSvc.On("Update", mock.Anything, orderID, userID, isFalse).Return(&model.Order{ID: orderID}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{"complete":false}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty body returns the order unchanged", func(t *testing.T) {
		current := &model.Order{ID: orderID, FoodID: foodID, UserID: userID, Complete: true}
		mockSvc.On("Update", mock.Anything, orderID, userID, model.OrderUpdate{}).Return(current, nil).Once()

		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.False(t, result.Received)
		assert.True(t, result.Complete)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not owned", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, orderID, userID, mock.Anything).Return(nil, service.ErrOrderNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{"complete":true}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/order/xyz", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}

func TestCancelOrder(t *testing.T) {
	mockSvc := new(serviceMocks.MockOrderService)
	app := fiber.New()
	app.Delete("/order/:orderId", middleware.CallerID(), CancelOrder(mockSvc))
	path := "/order/" + orderID.String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Cancel", mock.Anything, orderID, userID).Return(nil).Once()

		resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodDelete, path, nil)))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Cancel", mock.Anything, orderID, userID).Return(service.ErrOrderNotFound).Once()

		resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodDelete, path, nil)))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestAvatarHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockAvatarService)
	app := fiber.New()
	app.Get("/avatar", middleware.CallerID(), GetMyAvatar(mockSvc))
	app.Post("/avatar", middleware.CallerID(), PutAvatar(mockSvc))
	app.Delete("/avatar", middleware.CallerID(), DeleteAvatar(mockSvc))
	app.Get("/avatar/:userId", GetUserAvatar(mockSvc))

	t.Run("get default", func(t *testing.T) {
		blob := &model.Blob{ContentType: media.DefaultAvatarContentType, Data: media.DefaultAvatar}
		mockSvc.On("Get", mock.Anything, userID).Return(blob, nil).Once()

		resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodGet, "/avatar", nil)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		data, _ := io.ReadAll(resp.Body)
		assert.Equal(t, media.DefaultAvatar, data)
		mockSvc.AssertExpectations(t)
	})

	t.Run("get by user id", func(t *testing.T) {
		blob := &model.Blob{ContentType: "image/jpeg", Data: []byte("face")}
		mockSvc.On("Get", mock.Anything, userID).Return(blob, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/avatar/"+userID.String(), nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("put", func(t *testing.T) {
		body, ct := multipartBody(t, filePart{name: "me.png", contentType: "image/png", data: []byte("png")})
		isPNG := mock.MatchedBy(func(u media.Upload) bool {
			return u.ContentType == "image/png" && u.Size != nil && *u.Size == 3
		})
		mockSvc.On("Put", mock.Anything, userID, isPNG).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/avatar", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("put rejected", func(t *testing.T) {
		body, ct := multipartBody(t, filePart{name: "me.png", data: []byte("nope")})
		mockSvc.On("Put", mock.Anything, userID, mock.Anything).Return(media.ErrUnsupportedMediaType).Once()

		req := httptest.NewRequest(http.MethodPost, "/avatar", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(asUser(req))

		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("put without file", func(t *testing.T) {
		resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodPost, "/avatar", nil)))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, userID).Return(nil).Once()

		resp, _ := app.Test(asUser(httptest.NewRequest(http.MethodDelete, "/avatar", nil)))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	foods := new(serviceMocks.MockFoodService)
	orders := new(serviceMocks.MockOrderService)
	avatars := new(serviceMocks.MockAvatarService)
	RegisterRoutes(app, nil, Services{Foods: foods, Orders: orders, Avatars: avatars}, prometheus.NewRegistry())

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("caller required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/order", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("catalog is public", func(t *testing.T) {
		foods.On("List", mock.Anything).Return([]model.Food{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/food", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		foods.AssertExpectations(t)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
