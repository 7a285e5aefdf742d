package app

import (
	"errors"
	"flag"
)

type Config struct {
	ProjectPath string
	CaptureDir  string
	OutputDir   string
	Network     string
	Width       int
	Height      int
}

func NewConfig() *Config {
	return &Config{
		OutputDir: "charts",
		Width:     1024,
		Height:    768,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	flag.StringVar(&c.ProjectPath, "db", "", "Path to the Acrylic project file (.prj)")
	flag.StringVar(&c.CaptureDir, "captures", "", "Directory of airodump-ng CSV captures; adds the validation dashboard")
	flag.StringVar(&c.OutputDir, "o", c.OutputDir, "Directory to write PNG charts to")
	flag.StringVar(&c.Network, "network", "", "Restrict charts to networks whose SSID contains this fragment")
	flag.IntVar(&c.Width, "width", c.Width, "Chart width in pixels")
	flag.IntVar(&c.Height, "height", c.Height, "Chart height in pixels")
	flag.Parse()

	var err error
	if c.ProjectPath == "" {
		err = errors.New("project file path is required")
	} else if c.Width < 320 || c.Height < 240 {
		err = errors.New("chart size must be at least 320x240")
	}
	if err != nil {
		flag.Usage()
		return nil, err
	}
	return c, nil
}
