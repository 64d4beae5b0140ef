package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"any2text/internal/api"
	"any2text/internal/model"
	"any2text/internal/upload"
)

func runUpload(args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	language := fs.String("language", "auto", "transcription language hint (auto for detection)")
	engine := fs.String("engine", "local", "transcription engine")
	contentType := fs.String("content-type", "", "override detected content type")
	noWait := fs.Bool("no-wait", false, "submit only; do not poll until the job finishes")
	interval := fs.Duration("interval", 0, "poll interval (default 1.5s)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("upload requires exactly one audio file argument")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read audio file %s: %w", path, err)
	}

	client := newClient(*apiBase)
	fileName := filepath.Base(path)
	if !*jsonOut {
		fmt.Printf("uploading %s (%d bytes)...\n", fileName, len(data))
	}

	resolver := upload.Resolver{Backend: client}
	fileKey, err := resolver.Resolve(context.Background(), fileName, strings.TrimSpace(*contentType), data)
	if err != nil {
		return err
	}
	if !*jsonOut {
		fmt.Printf("stored as %s\n", fileKey)
	}

	job, err := client.CreateFromUpload(context.Background(), fileKey, *language, *engine)
	if err != nil {
		return err
	}

	return finishSubmit(client, job, *noWait, *interval, *jsonOut)
}

func runYouTube(args []string) error {
	fs := flag.NewFlagSet("youtube", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	language := fs.String("language", "auto", "transcription language hint (auto for detection)")
	engine := fs.String("engine", "local", "transcription engine")
	noWait := fs.Bool("no-wait", false, "submit only; do not poll until the job finishes")
	interval := fs.Duration("interval", 0, "poll interval (default 1.5s)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("youtube requires exactly one video URL argument")
	}

	client := newClient(*apiBase)
	job, err := client.CreateFromYouTube(context.Background(), fs.Arg(0), *language, *engine)
	if err != nil {
		return err
	}

	return finishSubmit(client, job, *noWait, *interval, *jsonOut)
}

func finishSubmit(client *api.Client, job model.Job, noWait bool, interval time.Duration, jsonOut bool) error {
	if noWait {
		if jsonOut {
			return printJSON(job)
		}
		fmt.Printf("created job %s (%s)\n", job.ID, job.Status)
		fmt.Printf("follow it with: any2text watch %s\n", job.ID)
		return nil
	}

	final, err := followJob(client, job.ID, interval, jsonOut)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(final)
	}
	printJobResult(final)
	return nil
}

// followJob polls one job to a terminal snapshot. Interactive terminals
// get the live view; everything else gets one line per transition.
// Ctrl-C stops scheduling further polls and returns cleanly.
func followJob(client *api.Client, jobID string, interval time.Duration, jsonOut bool) (model.Job, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !jsonOut && stdoutIsTTY() {
		return followJobTUI(ctx, client, jobID, interval)
	}
	return followJobPlain(ctx, client, jobID, interval, jsonOut)
}

func followJobPlain(ctx context.Context, client *api.Client, jobID string, interval time.Duration, quiet bool) (model.Job, error) {
	lastStatus := ""
	w := jobWatcher(client, interval)
	if !quiet {
		w.OnTransient = func(err error) {
			fmt.Fprintf(os.Stderr, "poll %s: transient: %v\n", jobID, err)
		}
	}
	return w.Watch(ctx, jobID, func(j model.Job) {
		if quiet || j.Status == lastStatus {
			return
		}
		lastStatus = j.Status
		line := fmt.Sprintf("[%s] %s", jobID, j.Status)
		if j.Title != "" {
			line += " " + j.Title
		}
		fmt.Println(line)
	})
}

func printJobResult(job model.Job) {
	fmt.Println()
	fmt.Printf("job %s finished: %s\n", job.ID, job.Status)
	if job.Title != "" {
		fmt.Printf("title: %s\n", job.Title)
	}
	switch src := job.Source().(type) {
	case model.YouTubeVideo:
		fmt.Printf("source: %s\n", src.URL)
	case model.UploadedFile:
		fmt.Printf("source: %s\n", src.FileKey)
	}
	if job.Error != "" {
		fmt.Printf("error: %s\n", job.Error)
	}
	if job.Result != nil && job.Result.Text != "" {
		if job.Result.Language != "" {
			fmt.Printf("language: %s\n", job.Result.Language)
		}
		fmt.Println()
		fmt.Println(job.Result.Text)
	}
}
