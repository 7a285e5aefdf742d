package app

import (
	"errors"
	"flag"
)

type Config struct {
	ProjectPath string
	ExportedDir string
	Network     string
	Floor       string
	OutputFile  string
	JSON        bool
}

func NewConfig() *Config {
	return &Config{}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	flag.StringVar(&c.ProjectPath, "db", "", "Path to the Acrylic project file (.prj)")
	flag.StringVar(&c.ExportedDir, "dir", "", "Directory of extracted floor CSVs to analyze instead of a project file")
	flag.StringVar(&c.Network, "network", "", "Restrict analysis to networks whose SSID contains this fragment")
	flag.StringVar(&c.Floor, "floor", "", "Analyze only the floor with this name")
	flag.StringVar(&c.OutputFile, "o", "", "Write the report to this file instead of stdout")
	flag.BoolVar(&c.JSON, "json", false, "Emit the analysis as JSON instead of a text report")
	flag.Parse()

	var err error
	if c.ProjectPath == "" && c.ExportedDir == "" {
		err = errors.New("a project file path or an extracted directory is required")
	} else if c.ProjectPath != "" && c.ExportedDir != "" {
		err = errors.New("project file path and extracted directory are mutually exclusive")
	}
	if err != nil {
		flag.Usage()
		return nil, err
	}
	return c, nil
}
