package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"novelshelf/internal/models"
	"novelshelf/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserTestServer(mockRepo *MockUserRepository) *Server {
	s := &Server{userRepo: mockRepo}
	s.userService = service.NewUserService(mockRepo)
	return s
}

func TestGetUserProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo)

	app.Get("/users/:userId", s.GetUserProfile)

	tests := []struct {
		name           string
		userIDParam    string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "Success",
			userIDParam: "1",
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(1), uint(0)).Return(&models.User{ID: 1, Username: "testuser"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			userIDParam:    "abc",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Not Found",
			userIDParam: "99",
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(99), uint(0)).Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userIDParam, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetMyProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo)

	// Middleware to set userID in Locals
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/users/me", s.GetMyProfile)

	mockRepo.On("GetByID", mock.Anything, uint(1), uint(1)).Return(&models.User{ID: 1, Username: "me"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	_ = json.NewDecoder(resp.Body).Decode(&user)
	assert.Equal(t, "me", user.Username)
}

func TestUpdateMyProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Put("/users/me", s.UpdateMyProfile)

	existing := &models.User{ID: 1, Username: "me", FirstName: "Ada", Bio: "old bio"}
	mockRepo.On("GetByID", mock.Anything, uint(1), uint(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		// untouched fields survive a partial update
		return u.Bio == "new bio" && u.FirstName == "Ada"
	})).Return(nil)

	body, _ := json.Marshal(map[string]string{"bio": "new bio"})
	req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestSearchUsers(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/users/search", s.SearchUsers)

	mockRepo.On("Search", mock.Anything, "ada", 20, 0, uint(1)).
		Return([]models.User{{ID: 2, Username: "ada_dev"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/search?q=ada", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// blank query is rejected before hitting the repository
	req = httptest.NewRequest(http.MethodGet, "/users/search?q=%20", nil)
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
