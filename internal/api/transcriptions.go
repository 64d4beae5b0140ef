package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"any2text/internal/model"
)

// PresignResult is the two-phase upload handle: PUT the bytes to
// UploadURL, then hand FileKey to job creation.
type PresignResult struct {
	UploadURL string `json:"upload_url"`
	FileKey   string `json:"file_key"`
}

func (c *Client) Presign(ctx context.Context, fileName, contentType string) (PresignResult, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return PresignResult{}, fmt.Errorf("%w: file name is required", ErrPresignFailed)
	}
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	body := map[string]string{
		"file_name":    fileName,
		"content_type": contentType,
	}
	var out PresignResult
	if err := c.do(ctx, "POST", "/uploads/presign", body, &out); err != nil {
		return PresignResult{}, fmt.Errorf("%w: %s", ErrPresignFailed, err)
	}
	if out.UploadURL == "" || out.FileKey == "" {
		return PresignResult{}, fmt.Errorf("%w: backend returned empty upload_url or file_key", ErrPresignFailed)
	}
	return out, nil
}

type createTranscriptionIn struct {
	FileKey  string `json:"fileKey"`
	Language string `json:"language,omitempty"`
	Engine   string `json:"engine,omitempty"`
}

// CreateFromUpload creates a transcription job for a previously
// uploaded file key. The returned job is always freshly queued.
func (c *Client) CreateFromUpload(ctx context.Context, fileKey, language, engine string) (model.Job, error) {
	fileKey = strings.TrimSpace(fileKey)
	if fileKey == "" {
		return model.Job{}, fmt.Errorf("%w: file key is required (run the upload step first)", ErrJobCreationFailed)
	}

	body := createTranscriptionIn{FileKey: fileKey, Language: language, Engine: engine}
	var job model.Job
	if err := c.do(ctx, "POST", "/transcriptions", body, &job); err != nil {
		return model.Job{}, fmt.Errorf("%w: %s", ErrJobCreationFailed, err)
	}
	return job, nil
}

type createYouTubeIn struct {
	YouTubeURL string `json:"youtube_url"`
	Language   string `json:"language,omitempty"`
	Engine     string `json:"engine,omitempty"`
}

// CreateFromYouTube creates a transcription job for a single video URL.
func (c *Client) CreateFromYouTube(ctx context.Context, youtubeURL, language, engine string) (model.Job, error) {
	if !IsYouTubeURL(youtubeURL) {
		return model.Job{}, fmt.Errorf("%w: %q is not a YouTube URL", ErrJobCreationFailed, strings.TrimSpace(youtubeURL))
	}

	body := createYouTubeIn{YouTubeURL: strings.TrimSpace(youtubeURL), Language: language, Engine: engine}
	var job model.Job
	if err := c.do(ctx, "POST", "/youtube/transcriptions", body, &job); err != nil {
		return model.Job{}, fmt.Errorf("%w: %s", ErrJobCreationFailed, err)
	}
	return job, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (model.Job, error) {
	var job model.Job
	if err := c.do(ctx, "GET", "/transcriptions/"+url.PathEscape(id), nil, &job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// ListOptions selects a page of job summaries. Status filters by one of
// the four job states when non-empty.
type ListOptions struct {
	Limit  int
	Offset int
	Status string
}

func (c *Client) ListJobs(ctx context.Context, opts ListOptions) ([]model.Job, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if s := strings.TrimSpace(opts.Status); s != "" {
		if !model.IsKnownStatus(s) {
			return nil, fmt.Errorf("invalid status filter %q", s)
		}
		q.Set("status", s)
	}
	path := "/transcriptions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var jobs []model.Job
	if err := c.do(ctx, "GET", path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) GetDetail(ctx context.Context, jobID string) (model.Detail, error) {
	var detail model.Detail
	if err := c.do(ctx, "GET", "/transcriptions/"+url.PathEscape(jobID)+"/detail", nil, &detail); err != nil {
		return model.Detail{}, err
	}
	return detail, nil
}

func (c *Client) ListImages(ctx context.Context, jobID string) ([]model.Image, error) {
	var images []model.Image
	if err := c.do(ctx, "GET", "/transcriptions/"+url.PathEscape(jobID)+"/images", nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}
