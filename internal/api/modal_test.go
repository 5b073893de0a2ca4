package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModal_OpenFull(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/v1/modals/full",
		`{"Recipe Name": "Chili", "Ingredients": "beans, beef ,", "Directions": "Simmer.", "Rating": 4.7, "Rating Count": 12}`))

	require.Equal(t, http.StatusOK, w.Code)
	modal := parse(t, w.Body.String()).Find("#recipeModal")
	require.Equal(t, 1, modal.Length())
	style, _ := modal.Attr("style")
	assert.Equal(t, "display: block", style)
	assert.Equal(t, "Chili", modal.Find("#modalRecipeName").Text())
	assert.Equal(t, 3, modal.Find("#modalIngredients li").Length())
	assert.Equal(t, "Simmer.", modal.Find("#modalDirections").Text())
	assert.Contains(t, modal.Find(".additional-details").Text(), "4.7 (12 ratings)")
}

func TestModal_OpenFull_ReplacesPreviousContent(t *testing.T) {
	env := setupTestRouter(t)

	env.do(jsonRequest(http.MethodPost, "/api/v1/modals/full", `{"Recipe Name": "Chili", "Ingredients": "a, b, c"}`))
	w := env.do(jsonRequest(http.MethodPost, "/api/v1/modals/full", `{"Recipe Name": "Soup", "Ingredients": "water"}`))

	modal := parse(t, w.Body.String()).Find("#recipeModal")
	assert.Equal(t, "Soup", modal.Find("#modalRecipeName").Text())
	assert.Equal(t, 1, modal.Find("#modalIngredients li").Length())
}

func TestModal_OpenFull_InvalidPayload(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/v1/modals/full", `{"Recipe Name": `))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModal_OpenFiltered_UnknownIndex(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/v1/modals/filtered/3", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(jsonRequest(http.MethodPost, "/api/v1/modals/filtered/abc", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModal_Close(t *testing.T) {
	env := setupTestRouter(t)
	env.do(jsonRequest(http.MethodPost, "/api/v1/modals/full", `{"Recipe Name": "Chili"}`))

	w := env.do(jsonRequest(http.MethodPost, "/api/v1/modals/close/full", ""))

	require.Equal(t, http.StatusOK, w.Code)
	modal := parse(t, w.Body.String()).Find("#recipeModal")
	_, styled := modal.Attr("style")
	assert.False(t, styled)
	assert.Equal(t, "Chili", modal.Find("#modalRecipeName").Text(), "content stays until the next open")

	w = env.do(jsonRequest(http.MethodPost, "/api/v1/modals/close/sidebar", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModal_Click(t *testing.T) {
	env := setupTestRouter(t)
	env.do(jsonRequest(http.MethodPost, "/api/v1/modals/full", `{"Recipe Name": "Chili"}`))

	w := env.do(jsonRequest(http.MethodPost, "/api/v1/modals/click", `{"target": "modalRecipeName"}`))
	assert.Equal(t, http.StatusNoContent, w.Code, "clicks inside the content change nothing")

	w = env.do(jsonRequest(http.MethodPost, "/api/v1/modals/click", `{"target": "recipeModal"}`))
	require.Equal(t, http.StatusOK, w.Code)
	_, styled := parse(t, w.Body.String()).Find("#recipeModal").Attr("style")
	assert.False(t, styled)
}
