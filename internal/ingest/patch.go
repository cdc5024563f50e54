package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

type Kind string

const (
	KindJob      Kind = "jobs"
	KindEmployee Kind = "employees"
	KindTruck    Kind = "trucks"
)

func IsValidKind(k string) bool {
	switch Kind(k) {
	case KindJob, KindEmployee, KindTruck:
		return true
	}
	return false
}

// PatchOp is the kind of write. OpSet updates the listed fields of an
// existing document, OpPut writes the whole document and creates it if
// needed.
type PatchOp string

const (
	OpSet    PatchOp = "set"
	OpPut    PatchOp = "put"
	OpDelete PatchOp = "delete"
)

// Patch is a field-level write keyed by entity id. Field names are document
// JSON names; a null value clears the field.
type Patch struct {
	Kind   Kind                       `json:"kind"`
	ID     string                     `json:"id"`
	Op     PatchOp                    `json:"op"`
	Fields map[string]json.RawMessage `json:"fields,omitempty"`
}

var null = json.RawMessage("null")

// FieldNames returns the patched field names in sorted order.
func (p Patch) FieldNames() []string {
	names := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DocumentFields encodes a document as a map of JSON field values.
func DocumentFields(doc interface{}) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

// DiffDocuments returns the fields of after that differ from before. Fields
// that disappear are reported as null.
func DiffDocuments(before, after interface{}) (map[string]json.RawMessage, error) {
	b, err := DocumentFields(before)
	if err != nil {
		return nil, err
	}
	a, err := DocumentFields(after)
	if err != nil {
		return nil, err
	}

	diff := make(map[string]json.RawMessage)
	for k, v := range a {
		if old, ok := b[k]; !ok || !bytes.Equal(old, v) {
			diff[k] = v
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			diff[k] = null
		}
	}

	return diff, nil
}

// MergeDocument applies fields over base and decodes the result into out.
// base and out may be the same pointer.
func MergeDocument(base interface{}, fields map[string]json.RawMessage, out interface{}) error {
	merged, err := DocumentFields(base)
	if err != nil {
		return err
	}

	for k, v := range fields {
		if IsNull(v) {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return err
	}

	return DecodeFields(raw, out)
}

// DecodeFields decodes a JSON object into a fresh document.
func DecodeFields(raw []byte, out interface{}) error {
	switch d := out.(type) {
	case *JobDocument:
		*d = JobDocument{}
	case *EmployeeDocument:
		*d = EmployeeDocument{}
	case *TruckDocument:
		*d = TruckDocument{}
	default:
		return fmt.Errorf("unsupported document type %T", out)
	}
	return json.Unmarshal(raw, out)
}

func IsNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), null)
}

// SetPatch builds a field-level patch from two versions of a document. ok is
// false when nothing changed.
func SetPatch(kind Kind, id string, before, after interface{}) (Patch, bool, error) {
	diff, err := DiffDocuments(before, after)
	if err != nil {
		return Patch{}, false, err
	}
	if len(diff) == 0 {
		return Patch{}, false, nil
	}
	return Patch{Kind: kind, ID: id, Op: OpSet, Fields: diff}, true, nil
}

// PutPatch builds a whole-document write.
func PutPatch(kind Kind, id string, doc interface{}) (Patch, error) {
	fields, err := DocumentFields(doc)
	if err != nil {
		return Patch{}, err
	}
	return Patch{Kind: kind, ID: id, Op: OpPut, Fields: fields}, nil
}

func DeletePatch(kind Kind, id string) Patch {
	return Patch{Kind: kind, ID: id, Op: OpDelete}
}

// Change announces that a document was written. It carries no field values;
// readers reload the collection.
type Change struct {
	Kind Kind    `json:"kind"`
	ID   string  `json:"id"`
	Op   PatchOp `json:"op"`
}

func (p Patch) Change() Change {
	return Change{Kind: p.Kind, ID: p.ID, Op: p.Op}
}
