package player

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of commands against one course.
//
//	course: advanced-python
//	commands:
//	  - op: select_topic
//	    topic: "1"
//	  - op: position
//	    position: 28
type Script struct {
	Course   string    `yaml:"course"`
	Commands []Command `yaml:"commands"`
}

// ParseScript decodes a YAML script. Unknown fields are rejected so a typo
// in an op argument does not silently become a zero value.
func ParseScript(data []byte) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, c := range sc.Commands {
		if c.Op == "" {
			return nil, fmt.Errorf("parse script: command %d has no op", i+1)
		}
	}
	return &sc, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// Step is the outcome of one scripted command.
type Step struct {
	Command Command
	Result  Result
}

// Run applies cmds in order and returns one Step per command. It stops at
// the first command with an unknown op.
func (s *Session) Run(ctx context.Context, cmds []Command) ([]Step, error) {
	steps := make([]Step, 0, len(cmds))
	for i, c := range cmds {
		res, err := s.Apply(ctx, c)
		if err != nil {
			return steps, fmt.Errorf("command %d: %w", i+1, err)
		}
		steps = append(steps, Step{Command: c, Result: res})
	}
	return steps, nil
}
