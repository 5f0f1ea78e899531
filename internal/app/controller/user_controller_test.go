package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserController_GetMe(t *testing.T) {
	env := setupControllerTest(t)
	user := env.createUser(t, "me@example.com")
	placeID := env.createPlace(t, user.ID, "Padaria do Bairro")

	require.NoError(t, env.db.Create(&model.Favorite{UserID: user.ID, PlaceID: placeID}).Error)
	require.NoError(t, env.db.Create(&model.Review{UserID: user.ID, PlaceID: placeID, Rating: 5}).Error)

	router := env.routerAs(&user.ID)
	router.GET("/users/me", env.userController.GetMe)

	w := performJSON(router, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "me@example.com", response["email"])
	assert.Equal(t, "Maria", response["name"])
	assert.Nil(t, response["password_hash"])

	stats := response["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["places"])
	assert.Equal(t, float64(1), stats["reviews"])
	assert.Equal(t, float64(1), stats["favorites"])

	places := response["places"].([]interface{})
	require.Len(t, places, 1)

	favorites := response["favorites"].([]interface{})
	require.Len(t, favorites, 1)
	favorite := favorites[0].(map[string]interface{})
	assert.Equal(t, fmt.Sprintf("%d-%d", user.ID, placeID), favorite["id"])

	reviews := response["reviews"].([]interface{})
	require.Len(t, reviews, 1)
	review := reviews[0].(map[string]interface{})
	assert.Equal(t, float64(5), review["rating"])
}

func TestUserController_GetMe_Unauthenticated(t *testing.T) {
	env := setupControllerTest(t)

	router := env.routerAs(nil)
	router.GET("/users/me", env.userController.GetMe)

	w := performJSON(router, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserController_GetMe_UserGone(t *testing.T) {
	env := setupControllerTest(t)

	missing := uint(9999)
	router := env.routerAs(&missing)
	router.GET("/users/me", env.userController.GetMe)

	w := performJSON(router, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "USER_NOT_FOUND", response["error"])
}
