package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldEntry is the YAML form of a Field.
type FieldEntry struct {
	Mask   uint8            `yaml:"mask"`
	Values map[uint8]string `yaml:"values"`
}

// RegisterEntry is the YAML form of a register definition.
type RegisterEntry struct {
	Offset uint8          `yaml:"offset"`
	Name   string         `yaml:"name"`
	Bytes  [][]FieldEntry `yaml:"bytes,omitempty"`
}

// File represents a register catalog YAML file for one protocol.
type File struct {
	Version   int             `yaml:"version"`
	Name      string          `yaml:"name"`
	Protocol  string          `yaml:"protocol"`
	Registers []RegisterEntry `yaml:"registers"`
}

// Validate checks the catalog file for consistency.
func (f *File) Validate() error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported catalog version: %d", f.Version)
	}
	if _, err := ParseProtocol(f.Protocol); err != nil {
		return err
	}

	seen := make(map[uint8]bool)
	for i, r := range f.Registers {
		if r.Name == "" {
			return fmt.Errorf("register %d: missing name", i)
		}
		if seen[r.Offset] {
			return fmt.Errorf("register %q: duplicate offset 0x%02X", r.Name, r.Offset)
		}
		seen[r.Offset] = true

		for pos, fields := range r.Bytes {
			for j, fe := range fields {
				if fe.Mask == 0 {
					return fmt.Errorf("register %q byte %d field %d: mask is zero", r.Name, pos, j)
				}
				for v := range fe.Values {
					if v&^fe.Mask != 0 {
						return fmt.Errorf("register %q byte %d field %d: value 0x%02X has bits outside mask 0x%02X",
							r.Name, pos, j, v, fe.Mask)
					}
				}
			}
		}
	}
	return nil
}

// Definitions converts the file's entries to register definitions keyed by offset.
func (f *File) Definitions() map[byte]*RegisterDefinition {
	defs := make(map[byte]*RegisterDefinition, len(f.Registers))
	for _, r := range f.Registers {
		def := &RegisterDefinition{Name: r.Name}
		for _, fields := range r.Bytes {
			set := make(ByteFieldSet, 0, len(fields))
			for _, fe := range fields {
				values := make(map[byte]string, len(fe.Values))
				for k, v := range fe.Values {
					values[k] = v
				}
				set = append(set, Field{Mask: fe.Mask, Values: values})
			}
			def.ByteFields = append(def.ByteFields, set)
		}
		defs[r.Offset] = def
	}
	return defs
}

// Load reads a catalog from a YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	return &file, nil
}

// LoadAndValidate reads a catalog and validates it.
func LoadAndValidate(path string) (*File, error) {
	file, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog %s: %w", path, err)
	}

	return file, nil
}

// Save writes a catalog to a YAML file.
func Save(path string, file *File) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}

	return nil
}

// Merge returns a new catalog with the files' registers laid over base.
// Later files win on conflicting offsets.
func Merge(base *Catalog, files ...*File) (*Catalog, error) {
	out := base
	if out == nil {
		out = New(nil)
	}
	for _, f := range files {
		proto, err := ParseProtocol(f.Protocol)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", f.Name, err)
		}
		for off, def := range f.Definitions() {
			out = out.With(proto, off, def)
		}
	}
	return out, nil
}

// LoadFiles loads, validates and merges catalog files onto base.
func LoadFiles(base *Catalog, paths ...string) (*Catalog, error) {
	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := LoadAndValidate(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return Merge(base, files...)
}

// Export converts a protocol's table back to the file form.
func Export(c *Catalog, p Protocol) *File {
	file := &File{Version: 1, Name: p.String(), Protocol: p.String()}
	for _, reg := range c.Registers(p) {
		entry := RegisterEntry{Offset: reg.Offset, Name: reg.Definition.Name}
		for _, set := range reg.Definition.ByteFields {
			fields := make([]FieldEntry, 0, len(set))
			for _, f := range set {
				fields = append(fields, FieldEntry{Mask: f.Mask, Values: f.Values})
			}
			entry.Bytes = append(entry.Bytes, fields)
		}
		file.Registers = append(file.Registers, entry)
	}
	return file
}
