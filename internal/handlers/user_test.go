package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/mocks"
	"auction-service/internal/models"
	"auction-service/internal/repositories"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users", handler.ListUsers)
	r.GET("/user/:email", handler.GetUserByEmail)
	r.POST("/users", handler.CreateUser)
	r.PATCH("/users/:id", handler.UpdateUserRole)
	r.DELETE("/users/:id", handler.DeleteUser)
	return r
}

func TestListUsersSuccess(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(userRepo, nil))

	userRepo.On("List", mock.Anything).Return([]models.User{{Email: "a@b.c"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	require.Len(t, users, 1)
	userRepo.AssertExpectations(t)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(userRepo, nil))

	userRepo.On("GetByEmail", mock.Anything, "ghost@b.c").Return(models.User{}, repositories.ErrUserNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/user/ghost@b.c", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestCreateUserReturnsExisting(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(userRepo, nil))

	existing := models.User{Email: "a@b.c", Role: models.RoleBuyer}
	userRepo.On("Create", mock.Anything, mock.Anything).Return(existing, false, nil).Once()

	body := bytes.NewBufferString(`{"email":"a@b.c","name":"A"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var user models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	require.Equal(t, "a@b.c", user.Email)
	userRepo.AssertExpectations(t)
}

func TestCreateUserRequiresEmail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(userRepo, nil))

	body := bytes.NewBufferString(`{"name":"A"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "Create")
}

func TestUpdateUserRoleRequiresRole(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(userRepo, nil))

	id := primitive.NewObjectID().Hex()
	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPatch, "/users/"+id, body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Role is required!")
	userRepo.AssertNotCalled(t, "UpdateRole")
}

func TestUpdateUserRoleNotFound(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(userRepo, nil))

	id := primitive.NewObjectID()
	userRepo.On("UpdateRole", mock.Anything, id, "seller").Return(repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"role":"seller"}`)
	req := httptest.NewRequest(http.MethodPatch, "/users/"+id.Hex(), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestDeleteUserSuccess(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(userRepo, nil))

	id := primitive.NewObjectID()
	userRepo.On("Delete", mock.Anything, id).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/users/"+id.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}
