package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"any2text/internal/model"
)

type actionOut struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
	Prompt  string `json:"prompt,omitempty"`
}

// FormatDialogue asks the backend to reformat a finished transcript as
// dialogue. The backend tracks this as its own async job; the parent
// transcription is never touched.
func (c *Client) FormatDialogue(ctx context.Context, jobID string) (model.Action, error) {
	var out actionOut
	if err := c.do(ctx, "POST", "/transcriptions/"+url.PathEscape(jobID)+"/format-dialogue", nil, &out); err != nil {
		return model.Action{}, fmt.Errorf("%w: %s", ErrActionCreationFailed, err)
	}
	return model.Action{
		ID:          out.JobID,
		Kind:        model.ArtifactDialogue,
		ParentJobID: jobID,
		Status:      model.StatusQueued,
	}, nil
}

// GenerateImage starts image generation for a finished transcript. When
// prompt is empty the backend derives one and echoes it back, so the
// returned action always carries the prompt actually used.
func (c *Client) GenerateImage(ctx context.Context, jobID, prompt string) (model.Action, error) {
	path := "/transcriptions/" + url.PathEscape(jobID) + "/generate-image"
	if p := strings.TrimSpace(prompt); p != "" {
		path += "?prompt=" + url.QueryEscape(p)
	}

	var out actionOut
	if err := c.do(ctx, "POST", path, nil, &out); err != nil {
		return model.Action{}, fmt.Errorf("%w: %s", ErrActionCreationFailed, err)
	}
	return model.Action{
		ID:             out.JobID,
		Kind:           model.ArtifactGeneratedImg,
		ParentJobID:    jobID,
		Status:         model.StatusQueued,
		ResolvedPrompt: out.Prompt,
	}, nil
}

// ImageRegistration records an already-uploaded image against a job.
type ImageRegistration struct {
	ImageType   string `json:"image_type"`
	FileKey     string `json:"file_key"`
	FileURL     string `json:"file_url,omitempty"`
	Filename    string `json:"filename,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *Client) RegisterImage(ctx context.Context, jobID string, reg ImageRegistration) (model.Image, error) {
	var img model.Image
	if err := c.do(ctx, "POST", "/transcriptions/"+url.PathEscape(jobID)+"/images", reg, &img); err != nil {
		return model.Image{}, fmt.Errorf("%w: %s", ErrRegistrationFailed, err)
	}
	return img, nil
}
