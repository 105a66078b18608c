package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SavePalette updates highlight.palette in the config file. An empty palette
// removes the key so the theme colors apply again.
// Comments and formatting in other sections are preserved.
func SavePalette(configPath string, palette []string) error {
	if len(palette) == 0 {
		return updateConfigFile(configPath, []string{"highlight", "palette"}, nil)
	}
	node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(palette))}
	for _, color := range palette {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: color, Style: yaml.DoubleQuotedStyle})
	}
	return updateConfigFile(configPath, []string{"highlight", "palette"}, node)
}

// SaveDefaultFlags updates regex.default_flags in the config file.
func SaveDefaultFlags(configPath, flags string) error {
	return updateConfigFile(configPath, []string{"regex", "default_flags"}, scalar(flags))
}

// SaveThemePreset updates theme.preset in the config file.
func SaveThemePreset(configPath, preset string) error {
	return updateConfigFile(configPath, []string{"theme", "preset"}, scalar(preset))
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

// updateConfigFile sets (or with a nil value removes) the key at path and
// writes the file atomically.
func updateConfigFile(configPath string, path []string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("parsing config: unexpected document structure")
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		// A file holding only comments parses to a null scalar.
		root.Kind = yaml.MappingNode
		root.Tag = ""
		root.Value = ""
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level must be a mapping")
	}
	if err := setPath(root, path, value); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// setPath walks mapping nodes along path, creating them as needed.
func setPath(node *yaml.Node, path []string, value *yaml.Node) error {
	key := path[0]
	idx := -1
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			idx = i
			break
		}
	}

	if len(path) == 1 {
		switch {
		case value == nil && idx >= 0:
			node.Content = append(node.Content[:idx], node.Content[idx+2:]...)
		case value == nil:
		case idx >= 0:
			node.Content[idx+1] = value
		default:
			node.Content = append(node.Content, scalar(key), value)
		}
		return nil
	}

	if idx < 0 {
		if value == nil {
			return nil
		}
		node.Content = append(node.Content, scalar(key), &yaml.Node{Kind: yaml.MappingNode})
		idx = len(node.Content) - 2
	}
	child := node.Content[idx+1]
	if child.Kind == yaml.ScalarNode && (child.Tag == "!!null" || child.Value == "") {
		// "highlight:" with only commented children.
		child.Kind = yaml.MappingNode
		child.Tag = ""
		child.Value = ""
	}
	if child.Kind != yaml.MappingNode {
		return fmt.Errorf("config key %q is not a mapping", key)
	}
	return setPath(child, path[1:], value)
}

func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".rexy.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
