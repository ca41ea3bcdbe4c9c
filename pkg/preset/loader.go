// Package preset resolves a run's Payload from one of three sources: a
// raw JSON document on stdin, a named file inside the preset store
// directory, or a UI-shaped flat record that needs translating into
// engine shape.
package preset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	goccyjson "github.com/goccy/go-json"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/config"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// Source describes where the preset document came from, for logging.
type Source string

const (
	SourceStdin Source = "stdin"
	SourceFile  Source = "file"
)

// Load resolves a Payload for a run. When name is empty, the document is
// read from stdin; otherwise name is looked up as a JSON file under
// cfg.PresetStorePath (a bare name or a name with a .json suffix, both
// accepted).
func Load(cfg *config.Config, name string, stdin io.Reader) (models.Payload, Source, error) {
	var raw []byte
	var src Source
	var err error

	if name == "" {
		src = SourceStdin
		raw, err = io.ReadAll(stdin)
		if err != nil {
			return models.Payload{}, src, fmt.Errorf("read preset from stdin: %w", err)
		}
	} else {
		src = SourceFile
		raw, err = readPresetFile(cfg.PresetStorePath, name)
		if err != nil {
			return models.Payload{}, src, err
		}
	}

	if len(raw) == 0 {
		return models.Payload{}, src, fmt.Errorf("preset document is empty")
	}

	var generic map[string]interface{}
	if err := goccyjson.Unmarshal(raw, &generic); err != nil {
		return models.Payload{}, src, fmt.Errorf("preset document is not valid JSON: %w", err)
	}

	var payload models.Payload
	if IsUIShape(generic) {
		payload = ConvertUIShape(generic)
	} else {
		if err := goccyjson.Unmarshal(raw, &payload); err != nil {
			return models.Payload{}, src, fmt.Errorf("decode engine-shaped preset: %w", err)
		}
	}

	payload.Playlist.Defaults()

	if payload.Library.URL == "" {
		payload.Library.URL = cfg.LibraryURL
	}
	if payload.Library.Token == "" {
		payload.Library.Token = cfg.LibraryToken
	}
	if payload.Library.MusicLibrary == "" {
		payload.Library.MusicLibrary = cfg.MusicLibrary
	}

	if payload.Library.URL == "" || payload.Library.Token == "" {
		return models.Payload{}, src, fmt.Errorf("missing library URL or token: set LIBRARY_URL/LIBRARY_TOKEN or include them in the preset")
	}

	return payload, src, nil
}

func readPresetFile(storeDir, name string) ([]byte, error) {
	candidates := []string{name}
	if filepath.Ext(name) != ".json" {
		candidates = append(candidates, name+".json")
	}

	var lastErr error
	for _, c := range candidates {
		path := filepath.Join(storeDir, c)
		raw, err := os.ReadFile(path)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("preset %q not found under %s: %w", name, storeDir, lastErr)
}
