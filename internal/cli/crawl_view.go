package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"any2text/internal/api"
	"any2text/internal/model"
)

type crawlSnapshotMsg struct {
	crawl model.ChannelCrawl
}

type crawlDoneMsg struct {
	crawl model.ChannelCrawl
	err   error
}

// crawlDashModel renders the channel fan-out: crawl header, per-status
// rollup, and one badge line per child job.
type crawlDashModel struct {
	crawlID string
	crawl   model.ChannelCrawl
	started time.Time
	lastErr error
	final   bool
}

func newCrawlDashModel(crawlID string) crawlDashModel {
	return crawlDashModel{crawlID: crawlID, started: time.Now()}
}

func (m crawlDashModel) Init() tea.Cmd {
	return nil
}

func (m crawlDashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case crawlSnapshotMsg:
		m.crawl = msg.crawl
		m.lastErr = nil
	case transientMsg:
		m.lastErr = msg.err
	case crawlDoneMsg:
		if msg.crawl.ID != "" {
			m.crawl = msg.crawl
		}
		m.final = true
		return m, tea.Quit
	}
	return m, nil
}

func (m crawlDashModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("any2text crawl"))
	b.WriteString("\n\n")

	status := m.crawl.Status
	if status == "" {
		status = model.StatusQueued
	}
	counts := m.crawl.CountByStatus()
	header := []string{
		fmt.Sprintf("crawl    %s", m.crawlID),
		fmt.Sprintf("status   %s", statusBadge(status)),
		fmt.Sprintf("channel  %s", m.crawl.ChannelURL),
		fmt.Sprintf("videos   %d found, %d jobs created", m.crawl.TotalVideosFound, m.crawl.TotalJobsCreated),
		fmt.Sprintf("children %d queued  %d processing  %d done  %d error",
			counts[model.StatusQueued], counts[model.StatusProcessing],
			counts[model.StatusDone], counts[model.StatusError]),
	}
	if m.crawl.Error != "" {
		header = append(header, fmt.Sprintf("error    %s", errorStyle.Render(m.crawl.Error)))
	}
	b.WriteString(panelStyle.Render(strings.Join(header, "\n")))
	b.WriteString("\n\n")

	for _, j := range m.crawl.Jobs {
		title := j.Title
		if title == "" {
			title = j.VideoURL
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", statusBadge(j.Status), truncate(title, 70)))
	}
	if len(m.crawl.Jobs) > 0 {
		b.WriteString("\n")
	}

	elapsed := time.Since(m.started).Round(time.Second)
	footer := fmt.Sprintf("%s elapsed", elapsed)
	if m.lastErr != nil {
		footer += "  retrying: " + m.lastErr.Error()
	}
	if !m.final {
		footer += "  (q to stop watching)"
	}
	b.WriteString(mutedStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func followCrawlTUI(ctx context.Context, client *api.Client, crawlID string, interval time.Duration) (model.ChannelCrawl, error) {
	p := tea.NewProgram(newCrawlDashModel(crawlID))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		crawl model.ChannelCrawl
		err   error
	}
	resCh := make(chan outcome, 1)

	go func() {
		w := crawlWatcher(client, interval)
		w.OnTransient = func(err error) {
			p.Send(transientMsg{err: err})
		}
		final, err := w.Watch(watchCtx, crawlID, func(c model.ChannelCrawl) {
			p.Send(crawlSnapshotMsg{crawl: c})
		})
		resCh <- outcome{crawl: final, err: err}
		p.Send(crawlDoneMsg{crawl: final, err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		res := <-resCh
		return res.crawl, err
	}
	cancel()
	res := <-resCh
	return res.crawl, nil
}
