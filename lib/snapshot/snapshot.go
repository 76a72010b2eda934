package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jobwatch/lib/scrapers/applitrack"
)

// the mutable "current state" document, overwritten on every index
// run. timestamped snapshots are never rewritten once on disk.
const IndexFilename = "index.json"

// Collection is one harvest run's records plus run metadata.
type Collection struct {
	Source   string                 `json:"source"`
	Date     string                 `json:"date"`
	JobCount int                    `json:"job_count"`
	Jobs     []applitrack.JobRecord `json:"jobs"`
}

func New(source string, jobs []applitrack.JobRecord, now time.Time) Collection {
	return Collection{
		Source:   source,
		Date:     now.Format("2006-01-02"),
		JobCount: len(jobs),
		Jobs:     jobs,
	}
}

func Parse(data []byte) (Collection, error) {
	var c Collection
	err := json.Unmarshal(data, &c)
	if err != nil {
		return Collection{}, err
	}
	return c, nil
}

func Load(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, err
	}
	return Parse(data)
}

// Writer persists collections as pretty-printed JSON under Dir,
// creating it on demand.
type Writer struct {
	Dir string
}

func (w Writer) WriteIndex(c Collection) (string, error) {
	return w.write(IndexFilename, c)
}

// snapshot filenames embed date, time and the unix timestamp, which
// makes them unique per run.
func (w Writer) WriteSnapshot(c Collection, now time.Time) (string, error) {
	name := fmt.Sprintf(
		"jobs_%s_%s_%d.json",
		now.Format("2006-01-02"),
		now.Format("15-04-05"),
		now.Unix(),
	)
	return w.write(name, c)
}

func (w Writer) write(name string, c Collection) (string, error) {
	err := os.MkdirAll(w.Dir, 0755)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.Dir, name)
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return "", err
	}
	return path, nil
}
