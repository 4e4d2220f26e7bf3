package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/alexanderramin/ganttsheet/internal/llm"
)

type Reader interface {
	Read() (*Config, error)
}

// FileReader reads a YAML file and then applies environment overrides.
// An empty Path reads the environment only.
type FileReader struct {
	Path string
}

func NewReader(path string) FileReader {
	return FileReader{Path: path}
}

func (r FileReader) Read() (*Config, error) {
	cfg := new(Config)

	var err error
	if r.Path != "" {
		err = cleanenv.ReadConfig(r.Path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.Ollama.Tasks = llm.DefaultTasks()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
