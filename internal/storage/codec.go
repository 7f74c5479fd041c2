package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"todo-list-api/internal/models"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrCorruptSnapshot is returned when stored data cannot be decoded or fails validation.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrUnsupportedVersion is returned for snapshots written by a newer schema.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

const schemaURL = "snapshot.schema.json"

//go:embed snapshot.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add snapshot schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Encode serializes a snapshot with 2-space indentation and a trailing newline.
func Encode(snap models.Snapshot) ([]byte, error) {
	if snap.Version == 0 {
		snap.Version = models.SnapshotVersion
	}
	snap.Default = normalizeSection(snap.Default)
	snap.UserProjects = normalizeSection(snap.UserProjects)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// normalizeSection replaces nil slices so they encode as [] instead of null.
func normalizeSection(sec models.SectionRecord) models.SectionRecord {
	items := make([]models.ProjectRecord, 0, len(sec.Items))
	for _, p := range sec.Items {
		if p.Tasks == nil {
			p.Tasks = []models.TaskRecord{}
		}
		items = append(items, p)
	}
	sec.Items = items
	return sec
}

// Decode validates data against the snapshot schema and parses it.
// Snapshots without a version, or with version 0, are read as version 1.
func Decode(data []byte) (*models.Snapshot, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptSnapshot, describeSchemaError(err))
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Version == 0 {
		snap.Version = 1
	}
	if snap.Version > models.SnapshotVersion {
		return nil, fmt.Errorf("%w: %w %d", ErrCorruptSnapshot, ErrUnsupportedVersion, snap.Version)
	}
	return &snap, nil
}

// describeSchemaError flattens the leaf causes of a validation error into one line.
func describeSchemaError(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var parts []string
	collectLeaves(ve, &parts)
	if len(parts) == 0 {
		return ve.Error()
	}
	return strings.Join(parts, "; ")
}

func collectLeaves(ve *jsonschema.ValidationError, parts *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*parts = append(*parts, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, parts)
	}
}
