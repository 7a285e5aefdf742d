package app

import (
	"errors"
	"flag"
)

type Config struct {
	ProjectPath string
	OutputDir   string
	Network     string
	MinSignal   *int
	Stats       bool
}

func NewConfig() *Config {
	return &Config{
		OutputDir: "extracted",
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var minSignal int
	flag.StringVar(&c.ProjectPath, "db", "", "Path to the Acrylic project file (.prj)")
	flag.StringVar(&c.OutputDir, "o", c.OutputDir, "Directory to write per-floor CSV exports to")
	flag.StringVar(&c.Network, "network", "", "Only export networks whose SSID contains this fragment")
	flag.IntVar(&minSignal, "min-signal", 0, "Drop measurements weaker than this dBm value")
	flag.BoolVar(&c.Stats, "stats", false, "Print per-AP signal statistics for each floor")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-signal" {
			c.MinSignal = &minSignal
		}
	})

	if c.ProjectPath == "" {
		flag.Usage()
		return nil, errors.New("project file path is required")
	}
	return c, nil
}
