package sequence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sai-Pranav-tech/Future-Sportler/pkg/core"
)

// ErrSampleNotFound reports an unknown sample id.
var ErrSampleNotFound = errors.New("sample not found")

// Sample describes one bundled capture file.
type Sample struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ListSamples returns the .json sequence files in dir, sorted by id. A
// missing directory lists as empty rather than failing, so a server with
// no bundled samples still starts.
func ListSamples(dir string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Sample{}, nil
		}
		return nil, fmt.Errorf("reading samples dir: %w", err)
	}

	samples := make([]Sample, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		samples = append(samples, Sample{
			ID:   id,
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].ID < samples[j].ID })
	return samples, nil
}

// LoadSample reads and decodes the sample with the given id from dir.
// The id is the file base name, so it must not carry path separators.
func LoadSample(dir, id string) (core.PoseSequence, error) {
	if id == "" || id != filepath.Base(id) {
		return core.PoseSequence{}, fmt.Errorf("%w: %q", ErrSampleNotFound, id)
	}
	data, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return core.PoseSequence{}, fmt.Errorf("%w: %q", ErrSampleNotFound, id)
		}
		return core.PoseSequence{}, fmt.Errorf("reading sample %q: %w", id, err)
	}
	return Decode(data)
}
