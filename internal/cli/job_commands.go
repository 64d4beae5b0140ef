package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"any2text/internal/api"
	"any2text/internal/model"
)

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("status requires exactly one job id argument")
	}

	client := newClient(*apiBase)
	job, err := client.GetJob(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(job)
	}

	fmt.Printf("job %s: %s\n", job.ID, job.Status)
	if job.Title != "" {
		fmt.Printf("title: %s\n", job.Title)
	}
	switch src := job.Source().(type) {
	case model.YouTubeVideo:
		fmt.Printf("source: %s\n", src.URL)
	case model.UploadedFile:
		if src.FileKey != "" {
			fmt.Printf("source: %s\n", src.FileKey)
		}
	}
	if job.Error != "" {
		fmt.Printf("error: %s\n", job.Error)
	}
	if job.Result != nil && job.Result.Text != "" {
		fmt.Println()
		fmt.Println(job.Result.Text)
	}
	return nil
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	interval := fs.Duration("interval", 0, "poll interval (default 1.5s)")
	jsonOut := fs.Bool("json", false, "print only the final snapshot as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("watch requires exactly one job id argument")
	}

	client := newClient(*apiBase)
	final, err := followJob(client, fs.Arg(0), *interval, *jsonOut)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(final)
	}
	printJobResult(final)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	limit := fs.Int("limit", 20, "maximum jobs to return")
	offset := fs.Int("offset", 0, "pagination offset")
	status := fs.String("status", "", "filter by status (queued|processing|done|error)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := newClient(*apiBase)
	jobs, err := client.ListJobs(context.Background(), api.ListOptions{
		Limit:  *limit,
		Offset: *offset,
		Status: strings.TrimSpace(*status),
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		if jobs == nil {
			jobs = []model.Job{}
		}
		return printJSON(jobs)
	}

	if len(jobs) == 0 {
		fmt.Println("no jobs found")
		return nil
	}
	for _, job := range jobs {
		title := job.Title
		if title == "" {
			title = describeSource(job)
		}
		fmt.Printf("%-36s  %-10s  %s\n", job.ID, job.Status, truncate(title, 60))
	}
	fmt.Printf("\n%d jobs (offset %d)\n", len(jobs), *offset)
	return nil
}

func runDetail(args []string) error {
	fs := flag.NewFlagSet("detail", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("detail requires exactly one job id argument")
	}
	jobID := fs.Arg(0)

	client := newClient(*apiBase)
	detail, err := client.GetDetail(context.Background(), jobID)
	if err != nil {
		return err
	}
	images, err := client.ListImages(context.Background(), jobID)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(struct {
			Detail model.Detail  `json:"detail"`
			Images []model.Image `json:"images"`
		}{detail, images})
	}

	fmt.Printf("job %s\n", jobID)
	if detail.Summary != "" {
		fmt.Printf("summary: %s\n", detail.Summary)
	}
	if detail.Keywords != "" {
		fmt.Printf("keywords: %s\n", detail.Keywords)
	}
	if detail.WordCount > 0 {
		fmt.Printf("words: %d\n", detail.WordCount)
	}
	if detail.ConfidenceScore > 0 {
		fmt.Printf("confidence: %.2f\n", detail.ConfidenceScore)
	}
	if detail.ProcessingTime > 0 {
		fmt.Printf("processing time: %s\n", (time.Duration(detail.ProcessingTime * float64(time.Second))).Round(time.Millisecond))
	}
	if detail.FormattedText != "" {
		fmt.Println()
		fmt.Println(detail.FormattedText)
	}
	if len(images) > 0 {
		fmt.Println()
		fmt.Printf("images (%d):\n", len(images))
		for _, img := range images {
			label := firstNonEmpty(img.Filename, img.FileKey)
			fmt.Printf("  %-12s %s\n", img.ImageType, label)
		}
	}
	return nil
}

func describeSource(job model.Job) string {
	switch src := job.Source().(type) {
	case model.YouTubeVideo:
		return src.URL
	case model.UploadedFile:
		return src.FileKey
	}
	return ""
}
