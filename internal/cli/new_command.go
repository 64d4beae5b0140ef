package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"any2text/internal/api"
	"any2text/internal/upload"
)

const (
	newSourceFile    = "file"
	newSourceYouTube = "youtube"
	newSourceChannel = "channel"
)

type wizardField struct {
	Key     string
	Label   string
	Help    string
	Value   string
	Options []string
}

// wizardModel walks the submission fields one at a time. Select fields
// cycle through their options; free fields edit through the shared
// text input.
type wizardModel struct {
	fields  []wizardField
	index   int
	input   textinput.Model
	errText string
	done    bool
	aborted bool
}

func newWizardModel() wizardModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 2048
	input.Width = 60

	m := wizardModel{
		fields: []wizardField{
			{Key: "source", Label: "Source", Help: "what to transcribe", Value: newSourceFile, Options: []string{newSourceFile, newSourceYouTube, newSourceChannel}},
			{Key: "target", Label: "Target", Help: "audio file path, video URL, or channel URL"},
			{Key: "language", Label: "Language", Help: "auto for detection", Value: "auto"},
			{Key: "engine", Label: "Engine", Help: "transcription engine", Value: "local"},
			{Key: "max_videos", Label: "Max Videos", Help: "channel crawls only, 1-100", Value: "10"},
			{Key: "video_type", Label: "Video Type", Help: "channel crawls only", Value: api.VideoTypeAll, Options: []string{api.VideoTypeShorts, api.VideoTypeVideos, api.VideoTypeAll}},
		},
		input: input,
	}
	m.loadFieldIntoInput()
	m.input.Focus()
	return m
}

func (m *wizardModel) currentField() *wizardField {
	return &m.fields[m.index]
}

func (m *wizardModel) loadFieldIntoInput() {
	m.input.SetValue(m.currentField().Value)
	m.input.CursorEnd()
}

func (m *wizardModel) cycleOption(delta int) {
	f := m.currentField()
	if len(f.Options) == 0 {
		return
	}
	current := 0
	for i, opt := range f.Options {
		if opt == f.Value {
			current = i
			break
		}
	}
	next := (current + delta + len(f.Options)) % len(f.Options)
	f.Value = f.Options[next]
	m.loadFieldIntoInput()
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "left":
		if len(m.currentField().Options) > 0 {
			m.cycleOption(-1)
			return m, nil
		}
	case "right":
		if len(m.currentField().Options) > 0 {
			m.cycleOption(1)
			return m, nil
		}
	case "up", "shift+tab":
		m.commitInput()
		if m.index > 0 {
			m.index--
			m.loadFieldIntoInput()
		}
		return m, nil
	case "down", "tab":
		m.commitInput()
		if m.index < len(m.fields)-1 {
			m.index++
			m.loadFieldIntoInput()
		}
		return m, nil
	case "enter":
		m.commitInput()
		if err := m.validate(); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.errText = ""
		if m.index < len(m.fields)-1 {
			m.index++
			m.loadFieldIntoInput()
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	if len(m.currentField().Options) == 0 {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *wizardModel) commitInput() {
	if len(m.currentField().Options) == 0 {
		m.currentField().Value = strings.TrimSpace(m.input.Value())
	}
}

func (m wizardModel) validate() error {
	f := m.fields[m.index]
	switch f.Key {
	case "target":
		if f.Value == "" {
			return fmt.Errorf("target is required")
		}
	case "max_videos":
		n, err := strconv.Atoi(f.Value)
		if err != nil || n < 1 || n > api.MaxCrawlVideos {
			return fmt.Errorf("max videos must be between 1 and %d", api.MaxCrawlVideos)
		}
	}
	return nil
}

func (m wizardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New Transcription"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		marker := "  "
		if i == m.index {
			marker = "> "
		}
		value := f.Value
		if len(f.Options) > 0 {
			value = fmt.Sprintf("%s  %s", value, mutedStyle.Render("(left/right to change)"))
		}
		if i == m.index && len(f.Options) == 0 {
			value = m.input.View()
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s\n", marker, f.Label, value))
		if i == m.index && f.Help != "" {
			b.WriteString(mutedStyle.Render("  " + f.Help))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("enter advances, tab/shift+tab moves, esc cancels"))
	b.WriteString("\n")
	return b.String()
}

func (m wizardModel) value(key string) string {
	for _, f := range m.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	apiBase := fs.String("api", "", "backend base URL (default: $ANY2TEXT_API or http://localhost:8000)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() || !stdoutIsTTY() {
		return fmt.Errorf("new is interactive; use upload, youtube, or crawl in scripts")
	}

	final, err := tea.NewProgram(newWizardModel()).Run()
	if err != nil {
		return err
	}
	m, ok := final.(wizardModel)
	if !ok || m.aborted || !m.done {
		fmt.Println("cancelled")
		return nil
	}

	client := newClient(*apiBase)
	source := m.value("source")
	target := m.value("target")
	language := m.value("language")
	engine := m.value("engine")

	switch source {
	case newSourceFile:
		data, err := os.ReadFile(target)
		if err != nil {
			return fmt.Errorf("read audio file %s: %w", target, err)
		}
		resolver := upload.Resolver{Backend: client}
		fileKey, err := resolver.Resolve(context.Background(), filepath.Base(target), "", data)
		if err != nil {
			return err
		}
		job, err := client.CreateFromUpload(context.Background(), fileKey, language, engine)
		if err != nil {
			return err
		}
		return finishSubmit(client, job, false, 0, false)
	case newSourceYouTube:
		job, err := client.CreateFromYouTube(context.Background(), target, language, engine)
		if err != nil {
			return err
		}
		return finishSubmit(client, job, false, 0, false)
	case newSourceChannel:
		maxVideos, _ := strconv.Atoi(m.value("max_videos"))
		crawl, err := client.StartCrawl(context.Background(), api.CrawlRequest{
			ChannelURL: target,
			Language:   language,
			Engine:     engine,
			MaxVideos:  maxVideos,
			VideoType:  m.value("video_type"),
		})
		if err != nil {
			return err
		}
		crawlFinal, err := followCrawl(client, crawl.ID, 0, false)
		if err != nil {
			return err
		}
		printCrawlResult(crawlFinal)
		return nil
	}
	return fmt.Errorf("unknown source %q", source)
}
