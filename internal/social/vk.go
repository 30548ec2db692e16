package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const vkAPIVersion = "5.199"

type VKClient struct {
	BaseURL     string
	AccessToken string
	GroupID     string
	HTTP        *http.Client
}

func NewVKClient(accessToken, groupID string, timeout time.Duration) *VKClient {
	return &VKClient{
		BaseURL:     "https://api.vk.com/method",
		AccessToken: accessToken,
		GroupID:     groupID,
		HTTP:        &http.Client{Timeout: timeout},
	}
}

func (c *VKClient) Enabled() bool {
	return c != nil && c.AccessToken != "" && c.GroupID != ""
}

type vkError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

// PostToWall publishes a group wall post. When photoURL is set the photo is
// uploaded through the wall-upload flow and attached; a failed upload
// degrades to a text-only post instead of failing the whole delivery.
func (c *VKClient) PostToWall(ctx context.Context, message, photoURL string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("vk not configured")
	}

	params := url.Values{}
	params.Set("owner_id", "-"+c.GroupID)
	params.Set("from_group", "1")
	params.Set("message", message)

	if photoURL != "" {
		attachment, err := c.uploadWallPhoto(ctx, photoURL)
		if err != nil {
			log.Printf("vk: photo upload failed, posting text only: %v", err)
		} else {
			params.Set("attachments", attachment)
		}
	}

	var resp struct {
		Response struct {
			PostID int64 `json:"post_id"`
		} `json:"response"`
		Error *vkError `json:"error"`
	}
	if err := c.call(ctx, "wall.post", params, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("vk error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return strconv.FormatInt(resp.Response.PostID, 10), nil
}

func (c *VKClient) uploadWallPhoto(ctx context.Context, photoURL string) (string, error) {
	var serverResp struct {
		Response struct {
			UploadURL string `json:"upload_url"`
		} `json:"response"`
		Error *vkError `json:"error"`
	}
	params := url.Values{}
	params.Set("group_id", c.GroupID)
	if err := c.call(ctx, "photos.getWallUploadServer", params, &serverResp); err != nil {
		return "", err
	}
	if serverResp.Error != nil {
		return "", fmt.Errorf("vk error %d: %s", serverResp.Error.Code, serverResp.Error.Message)
	}

	photo, err := c.download(ctx, photoURL)
	if err != nil {
		return "", err
	}

	uploadResult, err := c.upload(ctx, serverResp.Response.UploadURL, photo)
	if err != nil {
		return "", err
	}

	saveParams := url.Values{}
	saveParams.Set("group_id", c.GroupID)
	saveParams.Set("server", strconv.FormatInt(uploadResult.Server, 10))
	saveParams.Set("photo", uploadResult.Photo)
	saveParams.Set("hash", uploadResult.Hash)

	var saveResp struct {
		Response []struct {
			ID      int64 `json:"id"`
			OwnerID int64 `json:"owner_id"`
		} `json:"response"`
		Error *vkError `json:"error"`
	}
	if err := c.call(ctx, "photos.saveWallPhoto", saveParams, &saveResp); err != nil {
		return "", err
	}
	if saveResp.Error != nil {
		return "", fmt.Errorf("vk error %d: %s", saveResp.Error.Code, saveResp.Error.Message)
	}
	if len(saveResp.Response) == 0 {
		return "", errors.New("vk: empty saveWallPhoto response")
	}
	p := saveResp.Response[0]
	return fmt.Sprintf("photo%d_%d", p.OwnerID, p.ID), nil
}

type vkUploadResult struct {
	Server int64  `json:"server"`
	Photo  string `json:"photo"`
	Hash   string `json:"hash"`
}

func (c *VKClient) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 20<<20))
}

func (c *VKClient) upload(ctx context.Context, uploadURL string, photo []byte) (*vkUploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(photo); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("upload failed: %s", bytes.TrimSpace(raw))
	}

	var out vkUploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *VKClient) call(ctx context.Context, method string, params url.Values, out any) error {
	params.Set("access_token", c.AccessToken)
	params.Set("v", vkAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+method, bytes.NewBufferString(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("vk %s: %s", method, bytes.TrimSpace(raw))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
