package constatus

// Document is a complete constatus configuration for one camera.
type Document struct {
	Logfile       string     `libconfig:"logfile"`
	LogLevel      string     `libconfig:"log-level"`
	ResizeType    string     `libconfig:"resize-type"`
	Source        Source     `libconfig:"source"`
	HTTPServers   []Listener `libconfig:"http-server"`
	MotionTrigger []Trigger  `libconfig:"motion-trigger"`
}

// Source is either a *V4LSource or a *NetworkSource.
type Source interface {
	SourceType() string
}

type V4LSource struct {
	Type          string  `libconfig:"type"`
	Device        string  `libconfig:"device"`
	Width         int     `libconfig:"width"`
	Height        int     `libconfig:"height"`
	MaxFPS        float64 `libconfig:"max-fps"`
	ResizeWidth   int     `libconfig:"resize-width"`
	ResizeHeight  int     `libconfig:"resize-height"`
	PreferJPEG    bool    `libconfig:"prefer-jpeg"`
	RPIWorkaround bool    `libconfig:"rpi-workaround"`
	Quality       int     `libconfig:"quality"`
}

func (s *V4LSource) SourceType() string { return s.Type }

type NetworkSource struct {
	ID           string  `libconfig:"id"`
	Type         string  `libconfig:"type"`
	URL          string  `libconfig:"url"`
	MaxFPS       float64 `libconfig:"max-fps"`
	ResizeWidth  int     `libconfig:"resize-width"`
	ResizeHeight int     `libconfig:"resize-height"`
}

func (s *NetworkSource) SourceType() string { return s.Type }

// Listener is one entry of the http-server list.
type Listener struct {
	ListenAdapter    string   `libconfig:"listen-adapter"`
	ListenPort       int      `libconfig:"listen-port"`
	FPS              float64  `libconfig:"fps"`
	Quality          int      `libconfig:"quality"`
	TimeLimit        int      `libconfig:"time-limit"`
	ResizeWidth      int      `libconfig:"resize-width"`
	ResizeHeight     int      `libconfig:"resize-height"`
	MotionCompatible bool     `libconfig:"motion-compatible"`
	AllowAdmin       bool     `libconfig:"allow-admin"`
	ArchiveAccess    bool     `libconfig:"archive-access"`
	SnapshotDir      string   `libconfig:"snapshot-dir"`
	Filters          []Filter `libconfig:"filters,omitempty"`
}

// Filter is a text overlay.
type Filter struct {
	Type     string `libconfig:"type"`
	Text     string `libconfig:"text"`
	Position string `libconfig:"position"`
}

type Target struct {
	ID                          string   `libconfig:"id"`
	Path                        string   `libconfig:"path"`
	Prefix                      string   `libconfig:"prefix"`
	Quality                     int      `libconfig:"quality"`
	RestartInterval             int      `libconfig:"restart-interval"`
	FPS                         float64  `libconfig:"fps"`
	OverrideFPS                 float64  `libconfig:"override-fps"`
	StreamWriterPluginFile      string   `libconfig:"stream-writer-plugin-file"`
	StreamWriterPluginParameter string   `libconfig:"stream-writer-plugin-parameter"`
	ExecStart                   string   `libconfig:"exec-start"`
	ExecCycle                   string   `libconfig:"exec-cycle"`
	ExecEnd                     string   `libconfig:"exec-end"`
	Filters                     []Filter `libconfig:"filters"`
	Output                      Output   `libconfig:",inline"`
}

// Output selects how a target writes recordings: *FFmpegOutput or *ExtPipeOutput.
type Output interface {
	OutputFormat() string
}

type FFmpegOutput struct {
	Format     string `libconfig:"format"`
	Type       string `libconfig:"ffmpeg-type"`
	Parameters string `libconfig:"ffmpeg-parameters"`
	Bitrate    int    `libconfig:"bitrate"`
}

func (o *FFmpegOutput) OutputFormat() string { return o.Format }

type ExtPipeOutput struct {
	Format string `libconfig:"format"`
	Cmd    string `libconfig:"cmd"`
}

func (o *ExtPipeOutput) OutputFormat() string { return o.Format }

// Trigger is one entry of the motion-trigger list.
type Trigger struct {
	NoiseFactor             int       `libconfig:"noise-factor"`
	PixelsChangedPercentage float64   `libconfig:"pixels-changed-percentage"`
	MinDuration             int       `libconfig:"min-duration"`
	MuteDuration            int       `libconfig:"mute-duration"`
	TriggerPluginFile       string    `libconfig:"trigger-plugin-file"`
	TriggerPluginParameter  string    `libconfig:"trigger-plugin-parameter"`
	WarmupDuration          int       `libconfig:"warmup-duration"`
	SelectionBitmap         string    `libconfig:"selection-bitmap"`
	PreMotionRecordDuration int       `libconfig:"pre-motion-record-duration"`
	MaxFPS                  float64   `libconfig:"max-fps"`
	FiltersDetection        []Filter  `libconfig:"filters-detection"`
	Targets                 []*Target `libconfig:"targets"`
}
