package postprocess

import (
	"context"
	"fmt"
	"strings"

	"any2text/internal/api"
	"any2text/internal/model"
)

// Backend is the slice of the API client the sequencer needs.
type Backend interface {
	FormatDialogue(ctx context.Context, jobID string) (model.Action, error)
	GenerateImage(ctx context.Context, jobID, prompt string) (model.Action, error)
	Presign(ctx context.Context, fileName, contentType string) (api.PresignResult, error)
	PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error
	RegisterImage(ctx context.Context, jobID string, reg api.ImageRegistration) (model.Image, error)
}

// Sequencer issues dependent follow-up actions against a job the caller
// has already observed. Preconditions are checked against the caller's
// snapshot before any request goes out; a stale snapshot simply means
// the backend rejects the action instead.
type Sequencer struct {
	Backend Backend
}

// AttachImageInput carries the bytes and metadata for attach-image.
type AttachImageInput struct {
	Filename    string
	MimeType    string
	Data        []byte
	Description string
}

// FormatDialogue starts dialogue formatting for a completed job.
// Requires the parent to be done with a non-empty transcript.
func (s Sequencer) FormatDialogue(ctx context.Context, parent model.Job) (model.Action, error) {
	if err := requireTranscript(parent); err != nil {
		return model.Action{}, err
	}
	return s.Backend.FormatDialogue(ctx, parent.ID)
}

// GenerateImage starts image generation for a completed job. The
// returned action carries the prompt the backend actually used.
func (s Sequencer) GenerateImage(ctx context.Context, parent model.Job, prompt string) (model.Action, error) {
	if err := requireTranscript(parent); err != nil {
		return model.Action{}, err
	}
	return s.Backend.GenerateImage(ctx, parent.ID, prompt)
}

// AttachImage uploads an image through presign + PUT and registers it
// against the job. The three phases abort on first failure; completion
// is synchronous, so the returned action is already terminal. Requires
// the parent to be in any terminal state.
func (s Sequencer) AttachImage(ctx context.Context, parent model.Job, in AttachImageInput) (model.Action, error) {
	if !model.IsTerminal(parent.Status) {
		return model.Action{}, fmt.Errorf("%w: job %s is %s; attach requires a finished job", api.ErrPreconditionFailed, parent.ID, parent.Status)
	}
	if strings.TrimSpace(in.Filename) == "" || len(in.Data) == 0 {
		return model.Action{}, fmt.Errorf("%w: attach requires a file name and non-empty bytes", api.ErrPreconditionFailed)
	}

	presigned, err := s.Backend.Presign(ctx, in.Filename, in.MimeType)
	if err != nil {
		return model.Action{}, err
	}
	if err := s.Backend.PutObject(ctx, presigned.UploadURL, in.MimeType, in.Data); err != nil {
		return model.Action{}, err
	}
	img, err := s.Backend.RegisterImage(ctx, parent.ID, api.ImageRegistration{
		ImageType:   model.ImageTypeUploaded,
		FileKey:     presigned.FileKey,
		FileURL:     stripQuery(presigned.UploadURL),
		Filename:    in.Filename,
		MimeType:    in.MimeType,
		Description: in.Description,
	})
	if err != nil {
		return model.Action{}, err
	}

	return model.Action{
		ID:          img.ID,
		Kind:        model.ArtifactAttachedImage,
		ParentJobID: parent.ID,
		Status:      model.StatusDone,
		FileKey:     img.FileKey,
	}, nil
}

func requireTranscript(parent model.Job) error {
	if parent.Status != model.StatusDone {
		return fmt.Errorf("%w: job %s is %s; wait for it to finish", api.ErrPreconditionFailed, parent.ID, parent.Status)
	}
	if parent.Result == nil || strings.TrimSpace(parent.Result.Text) == "" {
		return fmt.Errorf("%w: job %s finished without a transcript", api.ErrPreconditionFailed, parent.ID)
	}
	return nil
}

// stripQuery drops the presign signature so the registered file_url is
// the stable object address.
func stripQuery(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
