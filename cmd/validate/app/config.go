package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roametrics/wifi-survey/internal/analysis"
)

type Config struct {
	ProjectPath string
	CaptureDir  string
	Network     string
	OutputFile  string
	Policy      analysis.VerdictPolicy
}

// policyFile is the YAML layout of the optional cutoffs file. Fields left
// out keep their defaults.
type policyFile struct {
	Verdict analysis.VerdictPolicy `yaml:"verdict"`
}

func NewConfig() *Config {
	return &Config{
		Policy: analysis.DefaultVerdictPolicy(),
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var policyPath string
	flag.StringVar(&c.ProjectPath, "db", "", "Path to the Acrylic project file (.prj)")
	flag.StringVar(&c.CaptureDir, "captures", "", "Directory of airodump-ng CSV captures to compare against")
	flag.StringVar(&c.Network, "network", "", "Restrict comparison to networks containing this fragment")
	flag.StringVar(&c.OutputFile, "o", "", "Write the report to this file instead of stdout")
	flag.StringVar(&policyPath, "config", "", "YAML file overriding the verdict cutoffs")
	flag.Parse()

	var err error
	if c.ProjectPath == "" {
		err = errors.New("project file path is required")
	} else if c.CaptureDir == "" {
		err = errors.New("captures directory is required")
	}
	if err != nil {
		flag.Usage()
		return nil, err
	}

	if policyPath != "" {
		if err := loadPolicy(policyPath, &c.Policy); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func loadPolicy(path string, policy *analysis.VerdictPolicy) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading policy file: %w", err)
	}

	file := policyFile{Verdict: *policy}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing policy file: %w", err)
	}

	*policy = file.Verdict
	return nil
}
