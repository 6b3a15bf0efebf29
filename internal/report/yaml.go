package report

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ailint-dev/ailint/domain"
)

// YAMLFormatter buffers every diagnostic and renders a single mapping
// keyed by file path at flush time. Files are sorted alphabetically but
// each file's diagnostics keep their insertion order, unlike the
// file-digest formatter which re-sorts by line.
type YAMLFormatter struct{}

// Render is a no-op; yaml output is produced at flush
func (f *YAMLFormatter) Render(w io.Writer, d domain.Diagnostic) {}

// Flush writes the diagnostics as a yaml document
func (f *YAMLFormatter) Flush(w io.Writer, diags []domain.Diagnostic) error {
	byFile, files, unknown := groupByFile(diags)

	filesNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, file := range files {
		filesNode.Content = append(filesNode.Content, scalarNode(file), diagnosticsNode(byFile[file]))
	}
	if len(unknown) > 0 {
		filesNode.Content = append(filesNode.Content, scalarNode(UnknownFile), diagnosticsNode(unknown))
	}

	root := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalarNode("files"), filesNode},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return domain.NewOutputError("failed to encode yaml report", err)
	}
	return enc.Close()
}

// diagnosticsNode builds the sequence of diagnostic records for one file,
// preserving insertion order
func diagnosticsNode(diags []domain.Diagnostic) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, d := range diags {
		record := &yaml.Node{Kind: yaml.MappingNode}
		record.Content = append(record.Content,
			scalarNode("level"), scalarNode(string(d.Severity)),
			scalarNode("rule"), scalarNode(string(d.Rule)),
			scalarNode("message"), scalarNode(d.Message),
		)
		if d.Line > 0 {
			record.Content = append(record.Content, scalarNode("line"), intNode(d.Line))
		}
		seq.Content = append(seq.Content, record)
	}
	return seq
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func intNode(value int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)}
}
