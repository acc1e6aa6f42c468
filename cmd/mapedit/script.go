package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/OCAP2/mapedit/internal/dispatcher"
	"github.com/goccy/go-yaml"
)

// Script is a recorded editing session: a starting geometry and the surface
// events to replay against it.
//
//	name: harbour
//	geometry: POLYGON((0 0,10 0,10 10,0 10,0 0))
//	events:
//	  - command: ":MARKER:ADD:"
//	    args: ["0,5"]
//	    as: mid
//	  - command: ":MARKER:MOVE:"
//	    args: ["$mid", "-1,5"]
type Script struct {
	Name     string        `yaml:"name"`
	Geometry string        `yaml:"geometry"`
	Events   []ScriptEvent `yaml:"events"`
}

// ScriptEvent is one dispatched command. A non-empty As stores the string
// result (a marker id for :MARKER:ADD:) so later args can refer to it as $name.
type ScriptEvent struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	As      string   `yaml:"as"`
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, e := range s.Events {
		if e.Command == "" {
			return nil, fmt.Errorf("event %d: missing command", i)
		}
	}
	return &s, nil
}

// Replay dispatches every event in order and stops at the first failure.
func (s *Script) Replay(d *dispatcher.Dispatcher) error {
	results := make(map[string]string)

	for i, e := range s.Events {
		args, err := substitute(e.Args, results)
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e.Command, err)
		}

		result, err := d.Dispatch(dispatcher.Event{
			Command:   e.Command,
			Args:      args,
			Timestamp: time.Now(),
		})
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e.Command, err)
		}

		if e.As != "" {
			str, ok := result.(string)
			if !ok {
				return fmt.Errorf("event %d (%s): no result to store as %q", i, e.Command, e.As)
			}
			results[e.As] = str
		}
	}
	return nil
}

func substitute(args []string, results map[string]string) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		if !strings.HasPrefix(a, "$") {
			out[i] = a
			continue
		}
		v, ok := results[a[1:]]
		if !ok {
			return nil, fmt.Errorf("undefined reference %s", a)
		}
		out[i] = v
	}
	return out, nil
}
