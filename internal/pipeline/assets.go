package pipeline

import (
	"github.com/kartoza/loudsync/internal/audio"
	"github.com/kartoza/loudsync/internal/models"
)

// LoadAssets probes every input path into an AudioAsset, preserving input
// order. The first unreadable input aborts loading.
func LoadAssets(p *audio.Processor, paths []string) ([]models.AudioAsset, error) {
	assets := make([]models.AudioAsset, 0, len(paths))
	for _, path := range paths {
		asset, err := p.ProbeAsset(path)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
