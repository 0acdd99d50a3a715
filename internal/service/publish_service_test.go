package service

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SynchronoMedia/english-skills-101/internal/instagram"
)

// uploadFake serves the rupload and configure endpoints of a video
// publish.
type uploadFake struct {
	ruploadVideo   int
	ruploadPhoto   int
	configure      int
	configureStory int

	failConfigure bool
}

func (f *uploadFake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/rupload_igvideo/"):
		f.ruploadVideo++
		json.NewEncoder(w).Encode(map[string]any{"upload_id": "1", "status": "ok"})

	case strings.HasPrefix(r.URL.Path, "/rupload_igphoto/"):
		f.ruploadPhoto++
		json.NewEncoder(w).Encode(map[string]any{"upload_id": "1", "status": "ok"})

	case r.URL.Path == "/api/v1/media/configure/":
		f.configure++
		if f.failConfigure {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{
				"message": "Transcode not finished yet.",
				"status":  "fail",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"media":  map[string]any{"id": "3141_777", "pk": 3141, "code": "DEF456"},
			"status": "ok",
		})

	case r.URL.Path == "/api/v1/media/configure_to_story/":
		f.configureStory++
		json.NewEncoder(w).Encode(map[string]any{
			"media":  map[string]any{"id": "3142_777", "pk": 3142},
			"status": "ok",
		})

	default:
		http.NotFound(w, r)
	}
}

func newPublishFixture(t *testing.T, fake *uploadFake) (PublishService, *instagram.Client) {
	t.Helper()
	ts := newAPIServer(t, fake)
	client := instagram.New(testUsername, "secret",
		instagram.WithBaseURL(ts.URL), instagram.WithHTTPClient(ts.Client()))
	return NewPublishService(), client
}

func writeVideoFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, minimalMP4, 0o644))
	return path
}

func TestPublishVideoAndStory(t *testing.T) {
	fake := &uploadFake{}
	s, client := newPublishFixture(t, fake)
	path := writeVideoFile(t, "x.mp4")

	err := s.PublishVideoAndStory(context.Background(), client, path, "hello")
	require.NoError(t, err)

	assert.Equal(t, 2, fake.ruploadVideo, "one rupload for the post, one for the story")
	assert.Equal(t, 1, fake.configure)
	assert.Equal(t, 1, fake.configureStory)
	assert.Equal(t, 0, fake.ruploadPhoto, "no sidecar, no cover upload")
}

func TestPublishUploadsCoverSidecar(t *testing.T) {
	fake := &uploadFake{}
	s, client := newPublishFixture(t, fake)
	path := writeVideoFile(t, "x.mp4")
	require.NoError(t, os.WriteFile(path+".jpg", []byte("jpeg bytes"), 0o644))

	err := s.PublishVideoAndStory(context.Background(), client, path, "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.ruploadPhoto)
}

func TestPublishRejectsNonVideo(t *testing.T) {
	fake := &uploadFake{}
	s, client := newPublishFixture(t, fake)

	path := filepath.Join(t.TempDir(), "x.mp4")
	require.NoError(t, os.WriteFile(path, []byte("just text pretending"), 0o644))

	err := s.PublishVideoAndStory(context.Background(), client, path, "hello")
	require.Error(t, err)

	var uploadErr *instagram.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "validate", uploadErr.Stage)
	assert.Equal(t, 0, fake.ruploadVideo, "a rejected file must never reach the API")
}

func TestPublishPostFailureStopsBeforeStory(t *testing.T) {
	fake := &uploadFake{failConfigure: true}
	s, client := newPublishFixture(t, fake)
	path := writeVideoFile(t, "x.mp4")

	err := s.PublishVideoAndStory(context.Background(), client, path, "hello")
	require.Error(t, err)

	var uploadErr *instagram.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "configure", uploadErr.Stage)
	assert.Equal(t, 0, fake.configureStory, "story must not be attempted after a failed post")
}
