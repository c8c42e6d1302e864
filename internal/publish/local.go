// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/podcast-engine/internal/speech"
	"github.com/pdiddy/podcast-engine/pkg/types"
)

// saveLocal writes the episode's artifacts to the configured local
// directory for debugging. Local save failures are swallowed; the
// episode is already published and recorded.
func (p *Publisher) saveLocal(ep types.Episode, audio *speech.Audio) {
	if err := os.MkdirAll(p.saveDir, 0o755); err != nil {
		return
	}

	base := filepath.Join(p.saveDir, ep.ArxivID)

	if data, err := yaml.Marshal(ep); err == nil {
		os.WriteFile(base+".yaml", data, 0o644)
	}
	os.WriteFile(base+".txt", []byte(ep.Script), 0o644)
	os.WriteFile(base+".wav", audio.WAV, 0o644)
}
