package cli

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"any2text/internal/model"
	"any2text/internal/postprocess"
)

// artifactView is the JSON shape for action commands: the parent job's
// post-processing artifacts keyed by kind, including the one just
// created.
type artifactView struct {
	JobID     string                              `json:"job_id"`
	JobStatus string                              `json:"job_status"`
	Artifacts map[model.ArtifactKind]model.Action `json:"artifacts"`
}

func newArtifactView(parent model.Job) artifactView {
	return artifactView{JobID: parent.ID, JobStatus: parent.Status, Artifacts: parent.Artifacts}
}

func runDialogue(args []string) error {
	fs := flag.NewFlagSet("dialogue", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("dialogue requires exactly one job id argument")
	}

	client := newClient(*apiBase)
	parent, err := client.GetJob(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}

	s := postprocess.Sequencer{Backend: client}
	action, err := s.FormatDialogue(context.Background(), parent)
	if err != nil {
		return err
	}
	parent.SetArtifact(action)
	if *jsonOut {
		return printJSON(newArtifactView(parent))
	}
	fmt.Printf("dialogue formatting started for job %s (action %s)\n", parent.ID, action.ID)
	fmt.Println("the formatted text will appear under: any2text detail " + parent.ID)
	return nil
}

func runImage(args []string) error {
	fs := flag.NewFlagSet("image", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	prompt := fs.String("prompt", "", "image prompt (backend derives one from the transcript when empty)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("image requires exactly one job id argument")
	}

	client := newClient(*apiBase)
	parent, err := client.GetJob(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}

	s := postprocess.Sequencer{Backend: client}
	action, err := s.GenerateImage(context.Background(), parent, *prompt)
	if err != nil {
		return err
	}
	parent.SetArtifact(action)
	if *jsonOut {
		return printJSON(newArtifactView(parent))
	}
	fmt.Printf("image generation started for job %s (action %s)\n", parent.ID, action.ID)
	if action.ResolvedPrompt != "" {
		fmt.Printf("prompt: %s\n", action.ResolvedPrompt)
	}
	return nil
}

func runAttach(args []string) error {
	fs := flag.NewFlagSet("attach", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	description := fs.String("description", "", "image description stored with the record")
	jsonOut := fs.Bool("json", false, "print JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("attach requires a job id and an image file argument")
	}
	jobID, path := fs.Arg(0), fs.Arg(1)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image file %s: %w", path, err)
	}
	fileName := filepath.Base(path)
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	client := newClient(*apiBase)
	parent, err := client.GetJob(context.Background(), jobID)
	if err != nil {
		return err
	}

	s := postprocess.Sequencer{Backend: client}
	action, err := s.AttachImage(context.Background(), parent, postprocess.AttachImageInput{
		Filename:    fileName,
		MimeType:    mimeType,
		Data:        data,
		Description: *description,
	})
	if err != nil {
		return err
	}
	parent.SetArtifact(action)
	if *jsonOut {
		return printJSON(newArtifactView(parent))
	}
	fmt.Printf("attached %s to job %s (stored as %s)\n", fileName, parent.ID, action.FileKey)
	return nil
}
