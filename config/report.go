package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/Strange-Account/go-modpack-loader/modpack"
)

// Report is the YAML summary of a loaded installation plan.
type Report struct {
	Source   string          `yaml:"source"`
	Name     string          `yaml:"name"`
	Version  string          `yaml:"version"`
	Author   string          `yaml:"author,omitempty"`
	Mods     []string        `yaml:"mods"`
	Content  []string        `yaml:"content"`
	Archives []ArchiveReport `yaml:"archives"`
}

type ArchiveReport struct {
	Name        string   `yaml:"name"`
	ArchiveName string   `yaml:"archiveName,omitempty"`
	Installer   string   `yaml:"installer"`
	Owner       string   `yaml:"owner,omitempty"`
	Patches     []string `yaml:"patches,omitempty"`
}

func NewReport(p *modpack.Plan) *Report {
	r := &Report{
		Source:   p.Source,
		Mods:     []string{},
		Content:  []string{},
		Archives: []ArchiveReport{},
	}
	if p.Empty() {
		return r
	}

	r.Name = p.Definition.Name
	r.Version = p.Definition.Version
	r.Author = p.Definition.Author

	for _, m := range p.Mods {
		r.Mods = append(r.Mods, m.Name)
	}
	for _, c := range p.Content {
		r.Content = append(r.Content, c.Path)
	}
	for _, a := range p.Archives {
		ar := ArchiveReport{
			Name:        a.Name,
			ArchiveName: a.ArchiveName,
			Installer:   string(a.Installer),
		}
		if a.Owner != nil {
			ar.Owner = a.Owner.Name
		}
		for _, patch := range a.Patches {
			ar.Patches = append(ar.Patches, patch.Path)
		}
		r.Archives = append(r.Archives, ar)
	}

	return r
}

// FileName is the report file name for the modpack at source.
func FileName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".plan.yaml"
}

// Write stores the report in dir and returns the written path.
func (r *Report) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	reportFile, err := r.reportPath(dir)
	if err != nil {
		return "", err
	}
	f, err := os.Create(reportFile)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	e := yaml.NewEncoder(f)
	if err := e.Encode(r); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	if err := e.Close(); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	return reportFile, nil
}

// reportPath picks the report file for r in dir. A report left there by a
// different modpack with the same base name is kept, and r gets a numbered
// name instead.
func (r *Report) reportPath(dir string) (string, error) {
	name := FileName(r.Source)
	stem := strings.TrimSuffix(name, ".plan.yaml")

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, name)
		if i > 1 {
			candidate = filepath.Join(dir, fmt.Sprintf("%s-%d.plan.yaml", stem, i))
		}

		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("stat report: %w", err)
		}

		existing, err := ReadReport(candidate)
		if err == nil && existing.Source == r.Source {
			return candidate, nil
		}
	}
}

// ReadReport loads a report written by Write.
func ReadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := &Report{}
	d := yaml.NewDecoder(f)
	if err := d.Decode(r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return r, nil
}
