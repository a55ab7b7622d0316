package constatus

import (
	"strings"

	"github.com/pkg/errors"

	"motion2constatus/motion"
)

// ErrMissingSource is returned when a camera has neither a video device nor a
// network camera URL.
var ErrMissingSource = errors.New("missing source")

const (
	DefaultLogfile = "constatus.log"
	LogLevel       = "debug"
	ResizeType     = "regular"

	// Motion treats a framerate of 100 as "as fast as possible".
	unlimitedFramerate = 100
	noFPSLimit         = -1.0
	noResize           = -1

	loopbackAdapter = "::FFFF:127.0.0.1"
	anyAdapter      = "0.0.0.0"

	targetID              = "motion output"
	targetPrefix          = "m-"
	targetRestartInterval = 86400
	ffmpegType            = "avi"
	ffmpegBitrate         = 400000
	warmupDuration        = 10

	// Used when motion's own default applies and the file does not say.
	defaultQuality       = 75
	defaultStreamPort    = 8081
	defaultStreamQuality = 50
)

// mapper carries the values several sections of the document share.
type mapper struct {
	c *motion.Config

	fps       float64
	quality   int
	width     int
	height    int
	targetDir string
	filters   []Filter
}

// FromMotion builds the constatus configuration equivalent to a motion
// configuration layer.
func FromMotion(c *motion.Config) (*Document, error) {
	m := &mapper{c: c}
	if err := m.common(); err != nil {
		return nil, err
	}

	src, err := m.source()
	if err != nil {
		return nil, err
	}
	listeners, err := m.listeners()
	if err != nil {
		return nil, err
	}
	trigger, err := m.trigger()
	if err != nil {
		return nil, err
	}

	return &Document{
		Logfile:       c.String("logfile", DefaultLogfile),
		LogLevel:      LogLevel,
		ResizeType:    ResizeType,
		Source:        src,
		HTTPServers:   listeners,
		MotionTrigger: []Trigger{trigger},
	}, nil
}

func (m *mapper) common() error {
	var err error
	if m.fps, err = Framerate(m.c); err != nil {
		return err
	}
	if m.quality, err = m.c.Int("quality", defaultQuality); err != nil {
		return err
	}
	if m.width, err = m.c.Int("width", 320); err != nil {
		return err
	}
	if m.height, err = m.c.Int("height", 240); err != nil {
		return err
	}
	if m.width <= 0 || m.height <= 0 {
		return errors.Wrapf(motion.ErrValueConversion, "%s: frame size %dx%d must be positive", m.c.Path(), m.width, m.height)
	}
	m.targetDir = m.c.String("target_dir", "./")
	m.filters = TextFilters(m.c)
	return nil
}

// Framerate returns the source frame rate limit, -1 meaning unlimited.
func Framerate(c *motion.Config) (float64, error) {
	fps, err := c.Float("framerate", unlimitedFramerate)
	if err != nil {
		return 0, err
	}
	if fps == unlimitedFramerate {
		return noFPSLimit, nil
	}
	return fps, nil
}

func (m *mapper) source() (Source, error) {
	dev, _ := m.c.Lookup("videodevice")
	url, hasURL := m.c.Lookup("netcam_url")

	if dev != "" && !hasURL {
		return &V4LSource{
			Type:          "v4l",
			Device:        dev,
			Width:         m.width,
			Height:        m.height,
			MaxFPS:        m.fps,
			ResizeWidth:   noResize,
			ResizeHeight:  noResize,
			RPIWorkaround: m.c.Has("mmalcam_name"),
			Quality:       m.quality,
		}, nil
	}

	if !hasURL {
		return nil, errors.Wrapf(ErrMissingSource, "%s: neither videodevice nor netcam_url is set", m.c.Path())
	}
	typ := "mjpeg"
	if strings.HasPrefix(url, "rtsp") {
		typ = "rtsp"
	}
	return &NetworkSource{
		ID:           m.c.Path(),
		Type:         typ,
		URL:          url,
		MaxFPS:       m.fps,
		ResizeWidth:  noResize,
		ResizeHeight: noResize,
	}, nil
}

// TextFilters returns the text overlays, lower right before lower left.
func TextFilters(c *motion.Config) []Filter {
	filters := []Filter{}
	for _, t := range []struct{ key, position string }{
		{"text_right", "lower-right"},
		{"text_left", "lower-left"},
	} {
		if text, ok := c.Lookup(t.key); ok {
			filters = append(filters, Filter{
				Type:     "text",
				Text:     ConvertText(text),
				Position: t.position,
			})
		}
	}
	return filters
}

func adapter(c *motion.Config, key string) string {
	if c.String(key, "") == "on" {
		return loopbackAdapter
	}
	return anyAdapter
}

func (m *mapper) listeners() ([]Listener, error) {
	port, err := m.c.Int("stream_port", defaultStreamPort)
	if err != nil {
		return nil, err
	}
	rate, err := m.c.Float("stream_maxrate", 1.0)
	if err != nil {
		return nil, err
	}
	limit, err := m.c.Int("stream_limit", -1)
	if err != nil {
		return nil, err
	}
	quality, err := m.c.Int("stream_quality", defaultStreamQuality)
	if err != nil {
		return nil, err
	}

	listeners := []Listener{{
		ListenAdapter:    adapter(m.c, "stream_localhost"),
		ListenPort:       port,
		FPS:              rate,
		Quality:          quality,
		TimeLimit:        limit,
		ResizeWidth:      noResize,
		ResizeHeight:     noResize,
		MotionCompatible: true,
		SnapshotDir:      m.targetDir,
	}}

	wcPort, err := m.c.Int("webcontrol_port", 0)
	if err != nil {
		return nil, err
	}
	if wcPort == 0 {
		return listeners, nil
	}
	wcQuality, err := m.c.Int("stream_quality", m.quality)
	if err != nil {
		return nil, err
	}
	return append(listeners, Listener{
		ListenAdapter: adapter(m.c, "webcontrol_localhost"),
		ListenPort:    wcPort,
		FPS:           rate,
		Quality:       wcQuality,
		TimeLimit:     limit,
		ResizeWidth:   noResize,
		ResizeHeight:  noResize,
		AllowAdmin:    true,
		ArchiveAccess: true,
		SnapshotDir:   m.targetDir,
		Filters:       m.filters,
	}), nil
}

func (m *mapper) target() *Target {
	t := &Target{
		ID:              targetID,
		Path:            m.targetDir,
		Prefix:          targetPrefix,
		Quality:         m.quality,
		RestartInterval: targetRestartInterval,
		FPS:             m.fps,
		OverrideFPS:     noFPSLimit,
		ExecStart:       m.c.String("on_movie_start", ""),
		ExecEnd:         m.c.String("on_movie_end", ""),
		Filters:         m.filters,
	}
	if cmd, ok := m.c.Lookup("extpipe"); ok {
		t.Output = &ExtPipeOutput{Format: "extpipe", Cmd: cmd}
	} else {
		t.Output = &FFmpegOutput{Format: "ffmpeg", Type: ffmpegType, Bitrate: ffmpegBitrate}
	}
	return t
}

// Sensitivity converts motion's changed pixel threshold into a percentage of
// the frame area.
func Sensitivity(threshold float64, width, height int) float64 {
	return threshold * 100.0 / float64(width*height)
}

func (m *mapper) trigger() (Trigger, error) {
	var tr Trigger
	threshold, err := m.c.Float("threshold", 1500.0)
	if err != nil {
		return tr, err
	}
	ints := []struct {
		key string
		dst *int
		def int
	}{
		{"noise_level", &tr.NoiseFactor, 32},
		{"post_capture", &tr.MinDuration, 0},
		{"event_gap", &tr.MuteDuration, 0},
		{"pre_capture", &tr.PreMotionRecordDuration, 0},
	}
	for _, i := range ints {
		if *i.dst, err = m.c.Int(i.key, i.def); err != nil {
			return tr, err
		}
	}
	tr.PixelsChangedPercentage = Sensitivity(threshold, m.width, m.height)
	tr.WarmupDuration = warmupDuration
	tr.MaxFPS = m.fps
	tr.FiltersDetection = []Filter{}
	tr.Targets = []*Target{m.target()}
	return tr, nil
}
