// Package config loads the unpacker's optional runtime defaults from a
// YAML file: queue capacity and the nested-archive/sprite-stream
// extensions. The CLI uses the nested-archive extension to pick which file
// entries go to the WAD parser; the RLE extension is loaded but not
// consulted, since the WAD parser always detects ".rle" itself.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nmeunpack/nme-unpacker/internal/archive"
	"github.com/nmeunpack/nme-unpacker/internal/errs"
)

// Config holds the unpacker's tunable constants: traversal queue capacity
// and the nested-archive/RLE-stream filename suffixes.
type Config struct {
	QueueCapacity int    `yaml:"queue_capacity"`
	WADExtension  string `yaml:"wad_extension"`
	RLEExtension  string `yaml:"rle_extension"`
}

// Default returns the compiled-in defaults used when no config file is
// given: a 4096-entry queue and the ".wad"/".rle" extensions.
func Default() Config {
	return Config{
		QueueCapacity: archive.DefaultQueueCapacity,
		WADExtension:  ".wad",
		RLEExtension:  ".rle",
	}
}

// Load reads a YAML config file at path, falling back field-by-field to
// Default() for anything the file omits. An empty path returns Default()
// unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.IO(err, "read config file")
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, errs.Format(err, "parse config file")
	}

	if loaded.QueueCapacity > 0 {
		cfg.QueueCapacity = loaded.QueueCapacity
	}
	if loaded.WADExtension != "" {
		cfg.WADExtension = loaded.WADExtension
	}
	if loaded.RLEExtension != "" {
		cfg.RLEExtension = loaded.RLEExtension
	}
	return cfg, nil
}
