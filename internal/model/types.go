package model

// Job is one transcription work item as returned by the backend.
type Job struct {
	ID               string  `json:"id"`
	Status           string  `json:"status"`
	Result           *Result `json:"result,omitempty"`
	Error            string  `json:"error,omitempty"`
	FileURL          string  `json:"file_url,omitempty"`
	FileKey          string  `json:"file_key,omitempty"`
	YouTubeURL       string  `json:"youtube_url,omitempty"`
	Title            string  `json:"title,omitempty"`
	Duration         float64 `json:"duration,omitempty"`
	Language         string  `json:"language,omitempty"`
	Engine           string  `json:"engine,omitempty"`
	ChannelCrawlerID string  `json:"channel_crawler_id,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`

	// Artifacts holds client-side post-processing state keyed by kind.
	// It never feeds back into Result.
	Artifacts map[ArtifactKind]Action `json:"-"`
}

// Result is the primary transcript payload, present once a job is done.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
}

type Segment struct {
	ID    int     `json:"id,omitempty"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Source is the tagged origin of a job: exactly one of an uploaded file
// or a YouTube video.
type Source interface {
	sourceKind() string
}

type UploadedFile struct {
	FileKey string
}

type YouTubeVideo struct {
	URL string
}

func (UploadedFile) sourceKind() string { return "upload" }
func (YouTubeVideo) sourceKind() string { return "youtube" }

// Source derives the job origin from the backend echo fields. A YouTube
// URL wins over the file key the backend mints for the downloaded audio.
func (j Job) Source() Source {
	if j.YouTubeURL != "" {
		return YouTubeVideo{URL: j.YouTubeURL}
	}
	return UploadedFile{FileKey: j.FileKey}
}

func (j *Job) SetArtifact(a Action) {
	if j.Artifacts == nil {
		j.Artifacts = make(map[ArtifactKind]Action)
	}
	j.Artifacts[a.Kind] = a
}

// ArtifactKind identifies a post-processing output attached to a job.
type ArtifactKind string

const (
	ArtifactDialogue      ArtifactKind = "dialogue-format"
	ArtifactGeneratedImg  ArtifactKind = "generated-image"
	ArtifactAttachedImage ArtifactKind = "attached-image"
)

// Action tracks one post-processing operation against a completed job.
// Its lifecycle is independent of the parent job's status.
type Action struct {
	ID             string       `json:"id"`
	Kind           ArtifactKind `json:"kind"`
	ParentJobID    string       `json:"parent_job_id"`
	Status         string       `json:"status"`
	ResolvedPrompt string       `json:"resolved_prompt,omitempty"`
	FileKey        string       `json:"file_key,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// Detail is the extended per-job view served alongside the raw result.
type Detail struct {
	ID              string  `json:"id"`
	JobID           string  `json:"job_id"`
	ResultJSON      string  `json:"result_json,omitempty"`
	FormattedText   string  `json:"formatted_text,omitempty"`
	Summary         string  `json:"summary,omitempty"`
	Keywords        string  `json:"keywords,omitempty"`
	ProcessingTime  float64 `json:"processing_time,omitempty"`
	WordCount       int     `json:"word_count,omitempty"`
	ConfidenceScore float64 `json:"confidence_score,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

const (
	ImageTypeUploaded   = "uploaded"
	ImageTypeGenerated  = "generated"
	ImageTypeThumbnail  = "thumbnail"
	ImageTypeScreenshot = "screenshot"
)

// Image is an image record registered against a job.
type Image struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	ImageType   string `json:"image_type"`
	FileKey     string `json:"file_key"`
	FileURL     string `json:"file_url,omitempty"`
	Filename    string `json:"filename,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ChannelCrawl is the fan-out resource tracking one channel-wide request.
type ChannelCrawl struct {
	ID               string       `json:"channel_crawler_id"`
	Status           string       `json:"status"`
	ChannelURL       string       `json:"channel_url"`
	TotalVideosFound int          `json:"total_videos_found"`
	TotalJobsCreated int          `json:"total_jobs_created"`
	Jobs             []ChannelJob `json:"jobs"`
	Error            string       `json:"error,omitempty"`
}

// ChannelJob is the lightweight child-job summary inside a crawl snapshot.
// Each child follows the Job state machine independently.
type ChannelJob struct {
	JobID    string `json:"job_id"`
	VideoURL string `json:"video_url"`
	Title    string `json:"title"`
	Status   string `json:"status"`
}
