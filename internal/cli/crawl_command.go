package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"any2text/internal/api"
	"any2text/internal/model"
	"any2text/internal/poll"
)

func runCrawl(args []string) error {
	fs := flag.NewFlagSet("crawl", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	language := fs.String("language", "auto", "transcription language hint (auto for detection)")
	engine := fs.String("engine", "local", "transcription engine")
	maxVideos := fs.Int("max-videos", 10, "maximum videos to transcribe (1-100)")
	videoType := fs.String("video-type", api.VideoTypeAll, "which uploads to include (shorts|videos|all)")
	noWait := fs.Bool("no-wait", false, "submit only; do not poll until the crawl finishes")
	interval := fs.Duration("interval", 0, "poll interval (default 3s)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("crawl requires exactly one channel URL argument")
	}

	client := newClient(*apiBase)
	crawl, err := client.StartCrawl(context.Background(), api.CrawlRequest{
		ChannelURL: fs.Arg(0),
		Language:   *language,
		Engine:     *engine,
		MaxVideos:  *maxVideos,
		VideoType:  *videoType,
	})
	if err != nil {
		return err
	}

	if *noWait {
		if *jsonOut {
			return printJSON(crawl)
		}
		fmt.Printf("started crawl %s (%s)\n", crawl.ID, crawl.Status)
		return nil
	}

	final, err := followCrawl(client, crawl.ID, *interval, *jsonOut)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(final)
	}
	printCrawlResult(final)
	return nil
}

func crawlWatcher(client *api.Client, interval time.Duration) poll.CrawlWatcher {
	return poll.CrawlWatcher{
		Fetch:    client.GetCrawl,
		Interval: interval,
	}
}

func followCrawl(client *api.Client, crawlID string, interval time.Duration, jsonOut bool) (model.ChannelCrawl, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !jsonOut && stdoutIsTTY() {
		return followCrawlTUI(ctx, client, crawlID, interval)
	}
	return followCrawlPlain(ctx, client, crawlID, interval, jsonOut)
}

func followCrawlPlain(ctx context.Context, client *api.Client, crawlID string, interval time.Duration, quiet bool) (model.ChannelCrawl, error) {
	w := crawlWatcher(client, interval)
	if !quiet {
		w.OnTransient = func(err error) {
			fmt.Fprintf(os.Stderr, "poll %s: transient: %v\n", crawlID, err)
		}
	}
	var lastLine string
	return w.Watch(ctx, crawlID, func(c model.ChannelCrawl) {
		if quiet {
			return
		}
		counts := c.CountByStatus()
		line := fmt.Sprintf("[%s] %s: %d found, %d jobs (%d done, %d error)",
			crawlID, c.Status, c.TotalVideosFound, c.TotalJobsCreated,
			counts[model.StatusDone], counts[model.StatusError])
		if line == lastLine {
			return
		}
		lastLine = line
		fmt.Println(line)
	})
}

func printCrawlResult(c model.ChannelCrawl) {
	fmt.Println()
	fmt.Printf("crawl %s finished: %s\n", c.ID, c.Status)
	fmt.Printf("channel: %s\n", c.ChannelURL)
	fmt.Printf("videos found: %d, jobs created: %d\n", c.TotalVideosFound, c.TotalJobsCreated)
	if c.Error != "" {
		fmt.Printf("error: %s\n", c.Error)
	}
	if len(c.Jobs) == 0 {
		return
	}
	fmt.Println()
	for _, j := range c.Jobs {
		title := j.Title
		if title == "" {
			title = j.VideoURL
		}
		fmt.Printf("%-36s  %-10s  %s\n", j.JobID, j.Status, truncate(title, 60))
	}
	fmt.Println()
	fmt.Println("inspect any child with: any2text watch <job-id>")
}
