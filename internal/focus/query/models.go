package query

import (
	"time"

	"github.com/mmechtley/hstfocus/internal/common/errors"
)

// Camera identifies an HST instrument detector with a focus model zero point.
type Camera string

const (
	CameraUVIS1 Camera = "UVIS1"
	CameraUVIS2 Camera = "UVIS2"
	CameraWFC1  Camera = "WFC1"
	CameraWFC2  Camera = "WFC2"
	CameraHRC   Camera = "HRC"
	CameraPC    Camera = "PC"
)

// ValidCameras lists every camera the focus tool accepts, in form order.
var ValidCameras = []Camera{CameraUVIS1, CameraUVIS2, CameraWFC1, CameraWFC2, CameraHRC, CameraPC}

// Format selects which generated artifacts a query retrieves.
type Format string

const (
	FormatTXT  Format = "TXT"
	FormatPNG  Format = "PNG"
	FormatBOTH Format = "BOTH"
)

// Params are the fields of the focus tool web form for a single query.
// Zero-valued Camera and Format fall back to the configured defaults.
type Params struct {
	Year   int    `json:"year"`
	Date   string `json:"date"`  // MM/DD
	Start  string `json:"start"` // 24-hr HH:MM
	Stop   string `json:"stop"`  // 24-hr HH:MM
	Camera Camera `json:"camera,omitempty"`
	Format Format `json:"format,omitempty"`
}

// Row is one model sample: a timestamp and the modeled defocus in microns.
type Row struct {
	Timestamp time.Time `json:"timestamp"`
	Defocus   float64   `json:"defocus"`
}

// FocusTable holds model rows in the chronological order the service returns them.
type FocusTable struct {
	Rows []Row `json:"rows"`
}

func (t *FocusTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Mean returns the arithmetic mean of all defocus values.
func (t *FocusTable) Mean() (float64, error) {
	if t.Len() == 0 {
		return 0, errors.NewEmptyTableError()
	}
	sum := 0.0
	for _, row := range t.Rows {
		sum += row.Defocus
	}
	return sum / float64(len(t.Rows)), nil
}

// Result carries the artifacts a query produced. Table and TableText are set
// for TXT and BOTH, Plot for PNG and BOTH.
type Result struct {
	Table     *FocusTable `json:"table,omitempty"`
	TableText []byte      `json:"-"`
	Plot      []byte      `json:"-"`
}
