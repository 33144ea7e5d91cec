package agenda

import (
	"io"
	"strings"

	"github.com/rmt1947/cov-swn/pkg/util"
	"gopkg.in/yaml.v3"
)

// yamlEntry mirrors one text agenda line. Range fields accept "min:step:max" or a single value.
type yamlEntry struct {
	SeedCov    string `yaml:"seedcov"`
	SeedSwn    string `yaml:"seedswn"`
	ManyNode   string `yaml:"manynode"`
	HalfDegree string `yaml:"halfdegree"`
	Beta       string `yaml:"beta"`
	Chance     string `yaml:"chance"`
	Inert      string `yaml:"inert"`
	Incubating string `yaml:"incubating"`
	Recovery   string `yaml:"recovery"`
	OutputDir  string `yaml:"outdir"`

	line int
}

// ParseYAML reads a YAML agenda: a sequence of mappings with the same ten fields as the text
// format. Entries are numbered from 1 in error messages.
func ParseYAML(r io.Reader, baseDir string) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []Entry{}, nil
		}
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "malformed yaml agenda")
	}

	var raw []yamlEntry
	if err := doc.Decode(&raw); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "yaml agenda must be a list of entries")
	}
	if len(doc.Content) == 1 {
		for i, item := range doc.Content[0].Content {
			raw[i].line = item.Line
		}
	}

	entries := make([]Entry, 0, len(raw))
	for i, y := range raw {
		line := y.line
		if line == 0 {
			line = i + 1
		}
		fields := [NUMBER_OF_FIELDS]string{
			y.SeedCov, y.SeedSwn,
			asRange(y.ManyNode), asRange(y.HalfDegree),
			asRange(y.Beta), asRange(y.Chance), asRange(y.Inert),
			asRange(y.Incubating), asRange(y.Recovery),
			y.OutputDir,
		}
		for field, text := range fields {
			if strings.TrimSpace(text) == "" {
				return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "at line %d, missing field %d", line, field+1)
			}
		}
		e, err := fieldParser{line: line, baseDir: baseDir}.entry(fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// asRange widens a single value v to v:0:v.
func asRange(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, ":") {
		return s
	}
	return s + ":0:" + s
}
