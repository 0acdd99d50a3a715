package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New("english_skills_101", "secret",
		WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
}

// decodeSignedBody unwraps the signed_body form envelope.
func decodeSignedBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	require.NoError(t, r.ParseForm())
	signed := r.PostFormValue("signed_body")
	require.True(t, strings.HasPrefix(signed, signaturePrefix+"."), "signed_body envelope missing")

	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(signed, signaturePrefix+".")), &params))
	return params
}

func TestLoginCapturesTokenAndUserID(t *testing.T) {
	var gotParams map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/accounts/login/", r.URL.Path)
		gotParams = decodeSignedBody(t, r)

		w.Header().Set("ig-set-authorization", "Bearer IGT:2:abc")
		json.NewEncoder(w).Encode(map[string]any{
			"logged_in_user": map[string]any{"pk": 777, "username": "english_skills_101"},
			"status":         "ok",
		})
	}))

	require.NoError(t, c.Login(context.Background()))
	assert.True(t, c.LoggedIn())
	assert.Equal(t, int64(777), c.UserID())

	assert.Equal(t, "english_skills_101", gotParams["username"])
	password, _ := gotParams["enc_password"].(string)
	assert.True(t, strings.HasPrefix(password, "#PWD_INSTAGRAM:0:"), "password envelope missing")
	assert.True(t, strings.HasSuffix(password, ":secret"))
	assert.NotEmpty(t, gotParams["device_id"])
	assert.NotEmpty(t, gotParams["guid"])
}

func TestLoginRejectedCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"message":    "The password you entered is incorrect.",
			"error_type": "bad_password",
			"status":     "fail",
		})
	}))

	err := c.Login(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Error(), "bad_password")
}

func TestReloginWithoutSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("relogin without a session must not call the API")
	}))

	var authErr *AuthError
	assert.ErrorAs(t, c.Relogin(context.Background()), &authErr)
}

func TestReloginSendsSavedBearer(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/accounts/current_user/", r.URL.Path)
		require.Equal(t, "Bearer IGT:2:saved", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"user":   map[string]any{"pk": 777},
			"status": "ok",
		})
	}))

	session := c.ExportSession()
	session.Authorization = "Bearer IGT:2:saved"
	c.RestoreSession(session)

	require.NoError(t, c.Relogin(context.Background()))
	assert.Equal(t, int64(777), c.UserID())
}

func TestReloginExpiredSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"message":    "login_required",
			"error_type": "login_required",
			"status":     "fail",
		})
	}))

	session := c.ExportSession()
	session.Authorization = "Bearer IGT:2:stale"
	c.RestoreSession(session)

	var authErr *AuthError
	assert.ErrorAs(t, c.Relogin(context.Background()), &authErr)
}

func TestSessionRoundtripPreservesDevice(t *testing.T) {
	original := New("english_skills_101", "secret")
	session := original.ExportSession()
	session.Authorization = "Bearer IGT:2:tok"

	restored := New("english_skills_101", "secret")
	restored.RestoreSession(session)

	assert.True(t, restored.LoggedIn())
	exported := restored.ExportSession()
	assert.Equal(t, session.AndroidID, exported.AndroidID)
	assert.Equal(t, session.PhoneID, exported.PhoneID)
	assert.Equal(t, session.GUID, exported.GUID)
	assert.Equal(t, session.UserAgent, exported.UserAgent)
}

func TestUserMediasCapsAtRequestedAmount(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/feed/user/42/", r.URL.Path)
		require.Equal(t, "10", r.URL.Query().Get("count"))

		items := make([]map[string]any, 12)
		for i := range items {
			items[i] = map[string]any{"id": "m", "pk": i}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": items, "num_results": len(items), "status": "ok",
		})
	}))

	medias, err := c.UserMedias(context.Background(), 42, 10)
	require.NoError(t, err)
	assert.Len(t, medias, 10)
}

func TestAPIErrorCarriesDetails(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"message":    "feedback_required",
			"error_type": "feedback_required",
			"status":     "fail",
		})
	}))

	_, err := c.MediaLikers(context.Background(), "123_777")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "feedback_required", apiErr.ErrorType)
}
