package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"vermafarm/internal/adapter/http/handlers/mocks"
	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(uc *mocks.MockIAccountUseCase, u *entities.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(uc)
	r := gin.New()
	g := r.Group("/api/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	private := g.Group("")
	if u != nil {
		private.Use(authenticated(*u))
	}
	private.GET("/me", h.Me)
	private.PUT("/updatedetails", h.UpdateDetails)
	private.PUT("/updatepassword", h.UpdatePassword)
	private.GET("/logout", h.Logout)
	return r
}

const registerBody = `{"name":"Asha","email":"asha@example.com","password":"secret1","phone":"9876543210","userType":"farmer","location":"Pune"}`

func TestAuthHandler_Register(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, nil)

		w := doJSON(r, http.MethodPost, "/api/auth/register", `{"name":"Asha"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, nil)

		uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(entities.User{}, "", usecase.ErrEmailTaken)

		w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody)
		expectStatus(t, w, http.StatusBadRequest)
		if body := decodeBody(t, w); body["message"] != "User with this email already exists" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, nil)

		uc.EXPECT().Register(gomock.Any(), usecase.RegisterInput{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "secret1",
			Phone:    "9876543210",
			UserType: entities.UserTypeFarmer,
			Location: "Pune",
		}).Return(entities.User{ID: "u-1", Name: "Asha", UserType: entities.UserTypeFarmer, PasswordHash: "hash"}, "tok", nil)

		w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody)
		expectStatus(t, w, http.StatusCreated)
		if strings.Contains(w.Body.String(), "hash") {
			t.Fatalf("password hash leaked: %s", w.Body.String())
		}
		body := decodeBody(t, w)
		if body["token"] != "tok" || body["message"] != "User registered successfully" {
			t.Fatalf("unexpected body %v", body)
		}
		user := body["user"].(map[string]any)
		if _, ok := user["stats"].(map[string]any)["activeRequests"]; !ok {
			t.Fatalf("expected farmer stats, got %v", user["stats"])
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, nil)

		uc.EXPECT().Login(gomock.Any(), "a@b.com", "bad").Return(entities.User{}, "", usecase.ErrInvalidCredentials)

		w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"bad"}`)
		expectStatus(t, w, http.StatusUnauthorized)
		if body := decodeBody(t, w); body["message"] != "Invalid credentials" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("deactivated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, nil)

		uc.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(entities.User{}, "", usecase.ErrAccountDeactivated)

		w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"pw"}`)
		expectStatus(t, w, http.StatusForbidden)
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, nil)

		w := doJSON(r, http.MethodPost, "/api/auth/login", `[`)
		expectStatus(t, w, http.StatusBadRequest)
		if body := decodeBody(t, w); body["message"] != "Please provide an email and password" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, nil)

		uc.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(entities.User{ID: "u-1", UserType: entities.UserTypeBuyer}, "tok", nil)

		w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"pw"}`)
		expectStatus(t, w, http.StatusOK)
		if body := decodeBody(t, w); body["message"] != "Login successful" || body["token"] != "tok" {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestAuthHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAccountUseCase(ctrl)
	u := entities.User{ID: "u-1", Name: "Ravi", UserType: entities.UserTypeLandowner}
	r := newAuthRouter(uc, &u)

	w := doJSON(r, http.MethodGet, "/api/auth/me", "")
	expectStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]any)
	if data["id"] != "u-1" || data["userType"] != "landowner" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestAuthHandler_UpdateDetails(t *testing.T) {
	t.Run("buyer cannot set charge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, &buyer)

		uc.EXPECT().UpdateDetails(gomock.Any(), asCaller(buyer), gomock.Any()).Return(entities.User{}, usecase.ErrInvalidChargeTarget)

		w := doJSON(r, http.MethodPut, "/api/auth/updatedetails", `{"serviceChargePercent":20}`)
		expectStatus(t, w, http.StatusForbidden)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, &landowner)

		uc.EXPECT().UpdateDetails(gomock.Any(), asCaller(landowner), gomock.Any()).Return(landowner, nil)

		w := doJSON(r, http.MethodPut, "/api/auth/updatedetails", `{"location":"Nashik"}`)
		expectStatus(t, w, http.StatusOK)
		if body := decodeBody(t, w); body["message"] != "Profile updated successfully" {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	t.Run("wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, &farmer)

		uc.EXPECT().UpdatePassword(gomock.Any(), asCaller(farmer), "old", "newpass").Return(entities.User{}, "", usecase.ErrIncorrectPassword)

		w := doJSON(r, http.MethodPut, "/api/auth/updatepassword", `{"currentPassword":"old","newPassword":"newpass"}`)
		expectStatus(t, w, http.StatusUnauthorized)
		if body := decodeBody(t, w); body["code"] != "INCORRECT_PASSWORD" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountUseCase(ctrl)
		r := newAuthRouter(uc, &farmer)

		uc.EXPECT().UpdatePassword(gomock.Any(), asCaller(farmer), "old", "newpass").Return(entities.User{}, "", errors.New("boom"))

		w := doJSON(r, http.MethodPut, "/api/auth/updatepassword", `{"currentPassword":"old","newPassword":"newpass"}`)
		expectStatus(t, w, http.StatusInternalServerError)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAccountUseCase(ctrl)
	r := newAuthRouter(uc, &buyer)

	w := doJSON(r, http.MethodGet, "/api/auth/logout", "")
	expectStatus(t, w, http.StatusOK)
	if w.Body.String() != `{"success":true,"message":"Logged out successfully","data":{}}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
