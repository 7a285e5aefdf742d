package app

import (
	"errors"
	"flag"
)

type Config struct {
	InputPath string
	OutputDir string
	DBPath    string
	Network   string
	List      bool
}

func NewConfig() *Config {
	return &Config{
		OutputDir: ".",
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	flag.StringVar(&c.InputPath, "in", "", "airodump-ng CSV file, or a directory of them")
	flag.StringVar(&c.OutputDir, "o", c.OutputDir, "Directory to write parsed CSV files to")
	flag.StringVar(&c.DBPath, "db", "", "Optional survey database to store captures in")
	flag.StringVar(&c.Network, "network", "", "Only report networks whose ESSID contains this fragment")
	flag.BoolVar(&c.List, "list", false, "List captures already stored in the database and exit")
	flag.Parse()

	var err error
	if c.List && c.DBPath == "" {
		err = errors.New("listing captures requires a database path")
	} else if !c.List && c.InputPath == "" {
		err = errors.New("input path is required")
	}
	if err != nil {
		flag.Usage()
		return nil, err
	}
	return c, nil
}
