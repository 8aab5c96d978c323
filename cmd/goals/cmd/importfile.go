package cmd

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fyzahq/fyza/internal/goals"
)

// importedGoal is one entry of an import file. Values stay strings so the
// store parses them exactly as it parses typed input.
type importedGoal struct {
	GoalName     string `yaml:"goal_name"`
	TargetAmount string `yaml:"target_amount"`
	TargetDate   string `yaml:"target_date"`
	Priority     string `yaml:"priority"`
}

func (g importedGoal) fields() []fieldValue {
	out := []fieldValue{
		{goals.FieldName, g.GoalName},
		{goals.FieldTargetAmount, g.TargetAmount},
		{goals.FieldTargetDate, g.TargetDate},
	}
	if g.Priority != "" {
		out = append(out, fieldValue{goals.FieldPriority, g.Priority})
	}
	return out
}

type fieldValue struct {
	field goals.Field
	value string
}

// readImportFile parses YAML or JSON holding either a list of goals or a
// mapping with a "goals" list.
func readImportFile(path string) ([]importedGoal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseImport(f)
}

func parseImport(r io.Reader) ([]importedGoal, error) {
	var doc yaml.Node
	err := yaml.NewDecoder(r).Decode(&doc)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var entries []importedGoal
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&entries)
	case yaml.MappingNode:
		var wrapped struct {
			Goals []importedGoal `yaml:"goals"`
		}
		err = root.Decode(&wrapped)
		entries = wrapped.Goals
	default:
		return nil, fmt.Errorf("failed to parse import file: expected a list of goals")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	return entries, nil
}
