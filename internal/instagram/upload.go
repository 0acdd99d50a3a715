package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/SynchronoMedia/english-skills-101/internal/transfer"
	"github.com/SynchronoMedia/english-skills-101/pkg/utils"
)

const (
	ruploadVideoPath = "/rupload_igvideo/"
	ruploadPhotoPath = "/rupload_igphoto/"

	retryContext = `{"num_step_auto_retry":0,"num_reupload":0,"num_step_manual_retry":0}`
)

// UploadVideo publishes the file as a permanent feed post with the given
// caption. A "<path>.jpg" sidecar, when present, becomes the cover frame;
// otherwise Instagram picks one.
func (c *Client) UploadVideo(ctx context.Context, path, caption string) (*transfer.InstagramMedia, error) {
	uploadID := newUploadID()

	if err := c.ruploadVideo(ctx, path, uploadID); err != nil {
		return nil, &UploadError{Stage: "rupload", Err: err}
	}

	coverPath := path + ".jpg"
	if utils.FileExists(coverPath) {
		if err := c.ruploadCover(ctx, coverPath, uploadID); err != nil {
			return nil, &UploadError{Stage: "cover", Err: err}
		}
	}

	media, err := c.configureVideo(ctx, uploadID, caption)
	if err != nil {
		return nil, &UploadError{Stage: "configure", Err: err}
	}
	return media, nil
}

// UploadStoryVideo publishes the file as a 24-hour story. Stories carry no
// caption.
func (c *Client) UploadStoryVideo(ctx context.Context, path string) (*transfer.InstagramMedia, error) {
	uploadID := newUploadID()

	if err := c.ruploadVideo(ctx, path, uploadID); err != nil {
		return nil, &UploadError{Stage: "rupload", Err: err}
	}

	media, err := c.configureStory(ctx, uploadID)
	if err != nil {
		return nil, &UploadError{Stage: "story", Err: err}
	}
	return media, nil
}

func newUploadID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func entityName(uploadID string) string {
	return uploadID + "_0_" + gonanoid.MustGenerate("0123456789", 9)
}

// ruploadVideo streams the raw video bytes in a single rupload request.
func (c *Client) ruploadVideo(ctx context.Context, path, uploadID string) error {
	params := map[string]string{
		"upload_id":         uploadID,
		"media_type":        "2",
		"xsharing_user_ids": "[]",
		"retry_context":     retryContext,
	}
	return c.rupload(ctx, ruploadVideoPath, path, "video/mp4", params)
}

// ruploadCover uploads the thumbnail under the same upload id so configure
// binds it to the video.
func (c *Client) ruploadCover(ctx context.Context, path, uploadID string) error {
	params := map[string]string{
		"upload_id":         uploadID,
		"media_type":        "2",
		"image_compression": `{"lib_name":"moz","lib_version":"3.1.m","quality":"80"}`,
		"retry_context":     retryContext,
	}
	return c.rupload(ctx, ruploadPhotoPath, path, "image/jpeg", params)
}

func (c *Client) rupload(ctx context.Context, basePath, filePath, entityType string, params map[string]string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", filePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("error sizing %s: %w", filePath, err)
	}

	ruploadParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("error marshalling rupload params: %w", err)
	}

	name := entityName(params["upload_id"])
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+basePath+name, f)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Instagram-Rupload-Params", string(ruploadParams))
	req.Header.Set("X-Entity-Name", name)
	req.Header.Set("X-Entity-Type", entityType)
	req.Header.Set("X-Entity-Length", strconv.FormatInt(info.Size(), 10))
	req.Header.Set("Offset", "0")
	c.setHeaders(req)

	var resp transfer.InstagramUploadResponse
	return c.do(req, &resp)
}

func (c *Client) configureVideo(ctx context.Context, uploadID, caption string) (*transfer.InstagramMedia, error) {
	params := map[string]any{
		"upload_id":    uploadID,
		"caption":      caption,
		"source_type":  "4",
		"media_folder": "Camera",
		"filter_type":  "0",
		"device_id":    c.device.AndroidID,
		"_uid":         strconv.FormatInt(c.userID, 10),
		"_uuid":        c.device.GUID,
	}

	var resp transfer.InstagramConfigureResponse
	if err := c.postSigned(ctx, "media/configure/?video=1", params, &resp); err != nil {
		return nil, err
	}
	return &resp.Media, nil
}

func (c *Client) configureStory(ctx context.Context, uploadID string) (*transfer.InstagramMedia, error) {
	params := map[string]any{
		"upload_id":      uploadID,
		"source_type":    "4",
		"configure_mode": "1",
		"device_id":      c.device.AndroidID,
		"_uid":           strconv.FormatInt(c.userID, 10),
		"_uuid":          c.device.GUID,
	}

	var resp transfer.InstagramConfigureResponse
	if err := c.postSigned(ctx, "media/configure_to_story/", params, &resp); err != nil {
		return nil, err
	}
	return &resp.Media, nil
}
