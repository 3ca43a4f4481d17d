package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lentilsandmillets/cms/pkg/cms"
	"github.com/lentilsandmillets/cms/pkg/cms/api"
	"github.com/lentilsandmillets/cms/pkg/cms/repo/memory"
)

// envelope mirrors the wire shape for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
}

func newTestServer(t *testing.T) (*httptest.Server, cms.Service) {
	t.Helper()

	svc, err := cms.New(cms.WithRepository(memory.New()))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/articles", api.NewArticlesHandler(svc).Routes())
	r.Mount("/recipes", api.NewRecipesHandler(svc).Routes())
	r.Mount("/cards", api.NewCardsHandler(svc).Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server, svc
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp, env
}

func TestCreateArticleEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/articles", map[string]interface{}{
		"title":         "Millet Field Guide",
		"category":      "millets",
		"card_position": "M1",
		"display_pages": []string{"millets"},
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var article cms.Article
	require.NoError(t, json.Unmarshal(env.Data, &article))
	assert.Equal(t, "millet-field-guide", article.Slug)
	assert.Equal(t, cms.ContentStatusDraft, article.Status)
}

func TestCreateArticleMissingFields(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/articles", map[string]interface{}{
		"title": "No Category",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "bad_request", env.Kind)
}

func TestCreateArticleInvalidPosition(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/articles", map[string]interface{}{
		"title":         "Wrong Slot",
		"category":      "lentils",
		"card_position": "M1",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_position", env.Kind)
	assert.NotEmpty(t, env.Error)
}

func TestGetArticleNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, server.URL+"/articles/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "article_not_found", env.Kind)
}

func TestGetArticleBadID(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, server.URL+"/articles/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestPublishArticleEndpoint(t *testing.T) {
	server, svc := newTestServer(t)

	article, err := svc.CreateArticle(context.Background(), cms.CreateArticleRequest{
		Title:    "To Publish",
		Category: cms.CategoryLentils,
	})
	require.NoError(t, err)

	resp, env := doJSON(t, http.MethodPost, fmt.Sprintf("%s/articles/%s/publish", server.URL, article.ID), nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var published cms.Article
	require.NoError(t, json.Unmarshal(env.Data, &published))
	assert.Equal(t, cms.ContentStatusPublished, published.Status)
	assert.NotNil(t, published.PublishedAt)

	// Second publish is an invalid transition
	resp, env = doJSON(t, http.MethodPost, fmt.Sprintf("%s/articles/%s/publish", server.URL, article.ID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_status", env.Kind)
}

func TestCreateRecipeEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/recipes", map[string]interface{}{
		"title":        "Millet Khichdi",
		"category":     "millets",
		"ingredients":  []string{"millet", "moong dal"},
		"instructions": []string{"Rinse", "Pressure cook"},
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestCreateRecipeFeaturedRequiredEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/recipes", map[string]interface{}{
		"title":         "Ambitious Dal",
		"category":      "lentils",
		"ingredients":   []string{"lentils"},
		"instructions":  []string{"Cook"},
		"card_position": "H10",
		"is_featured":   false,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "featured_required", env.Kind)
}

func TestGetCardsEndpoint(t *testing.T) {
	server, svc := newTestServer(t)

	_, err := svc.CreateRecipe(context.Background(), cms.CreateRecipeRequest{
		Title:        "Visible Upma",
		Category:     cms.CategoryMillets,
		Ingredients:  []string{"millet"},
		Instructions: []string{"Cook"},
		CardPosition: slotPtr("M4"),
		DisplayPages: []cms.Page{cms.PageMillets},
		Status:       cms.ContentStatusPublished,
	})
	require.NoError(t, err)

	resp, env := doJSON(t, http.MethodGet, server.URL+"/cards?page=millets", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var view cms.PageView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, cms.PageMillets, view.Page)
	require.Len(t, view.Cards, 8)
	assert.Len(t, view.EmptyPositions, 7)
	assert.False(t, view.Cards[3].Empty())
}

func TestGetCardsUnknownPage(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, server.URL+"/cards?page=about", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown_page", env.Kind)
}

func TestAssignCardEndpoint(t *testing.T) {
	server, svc := newTestServer(t)

	article, err := svc.CreateArticle(context.Background(), cms.CreateArticleRequest{
		Title:    "Assignable",
		Category: cms.CategoryLentils,
		Status:   cms.ContentStatusPublished,
	})
	require.NoError(t, err)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/cards", map[string]interface{}{
		"content_type":  "article",
		"content_id":    article.ID.String(),
		"card_position": "L1",
		"display_pages": []string{"lentils"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	got, err := svc.GetArticle(context.Background(), article.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CardPosition)
	assert.Equal(t, cms.Slot("L1"), *got.CardPosition)
}

func TestAssignCardConflict(t *testing.T) {
	server, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.CreateArticle(ctx, cms.CreateArticleRequest{
		Title:        "Tenant",
		Category:     cms.CategoryLentils,
		CardPosition: slotPtr("L1"),
		Status:       cms.ContentStatusPublished,
	})
	require.NoError(t, err)

	challenger, err := svc.CreateArticle(ctx, cms.CreateArticleRequest{
		Title:    "Challenger",
		Category: cms.CategoryLentils,
		Status:   cms.ContentStatusPublished,
	})
	require.NoError(t, err)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/cards", map[string]interface{}{
		"content_type":  "article",
		"content_id":    challenger.ID.String(),
		"card_position": "L1",
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "position_occupied", env.Kind)
}

func TestAssignCardBadContentID(t *testing.T) {
	server, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/cards", map[string]interface{}{
		"content_type":  "article",
		"content_id":    "nope",
		"card_position": "L1",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", env.Kind)
}

func TestUnassignCardEndpoint(t *testing.T) {
	server, svc := newTestServer(t)

	article, err := svc.CreateArticle(context.Background(), cms.CreateArticleRequest{
		Title:        "Clearable",
		Category:     cms.CategoryLentils,
		CardPosition: slotPtr("L2"),
		Status:       cms.ContentStatusPublished,
	})
	require.NoError(t, err)

	resp, env := doJSON(t, http.MethodDelete, server.URL+"/cards", map[string]interface{}{
		"content_type": "article",
		"content_id":   article.ID.String(),
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	got, err := svc.GetArticle(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CardPosition)
}

func slotPtr(s cms.Slot) *cms.Slot { return &s }

func TestRequestLoggerPassthrough(t *testing.T) {
	handler := api.RequestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
