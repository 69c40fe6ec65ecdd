package detail

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// Reserved keys inside the serialized record object. "index" is the join key
// and "_cluster_info" holds the hierarchical label mapping; neither appears
// in the open field set.
const (
	indexKey   = "index"
	clusterKey = "_cluster_info"
)

// ClusterLevel is one hierarchy level's label for a point.
type ClusterLevel struct {
	Level string
	Label string
}

// ClusterInfo maps cluster-level names to display labels, in label-layer
// order. Iteration order is insertion order, never sorted.
type ClusterInfo []ClusterLevel

// Record holds the auxiliary data for one point. Index is the dense join key
// between geometry, metadata rows and label layers. Fields is the open,
// insertion-ordered set of metadata columns copied verbatim from the source.
type Record struct {
	Index   int
	Fields  []Field
	Cluster ClusterInfo
}

// Field is one named metadata value of a record.
type Field struct {
	Name  string
	Value Value
}

// NewRecord returns a record containing only the point index.
func NewRecord(index int) *Record {
	return &Record{Index: index}
}

// Set appends the field, replacing an existing field with the same name in
// place so render order stays stable.
func (r *Record) Set(name string, v Value) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = v
			return
		}
	}
	r.Fields = append(r.Fields, Field{Name: name, Value: v})
}

// Field returns the named field value.
func (r *Record) Field(name string) (Value, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return r.Fields[i].Value, true
		}
	}
	return Value{}, false
}

// MarshalJSON emits the flat record object: index first, then the fields in
// insertion order, then _cluster_info when present.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"index":`)
	fmt.Fprintf(&buf, "%d", r.Index)
	for _, f := range r.Fields {
		buf.WriteByte(',')
		key, err := gojson.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := f.Value.appendJSON(&buf); err != nil {
			return nil, err
		}
	}
	if len(r.Cluster) > 0 {
		buf.WriteByte(',')
		buf.WriteString(`"` + clusterKey + `":{`)
		for i, cl := range r.Cluster {
			if i > 0 {
				buf.WriteByte(',')
			}
			level, err := gojson.Marshal(cl.Level)
			if err != nil {
				return nil, err
			}
			label, err := gojson.Marshal(cl.Label)
			if err != nil {
				return nil, err
			}
			buf.Write(level)
			buf.WriteByte(':')
			buf.Write(label)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the flat record object, preserving field and
// cluster-level order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return fmt.Errorf("detail: record is not a JSON object")
	}

	rec := Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("detail: record key is not a string: %v", keyTok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return err
		}

		switch key {
		case indexKey:
			n, ok := val.AsNumber()
			if !ok {
				return fmt.Errorf("detail: record index is not a number")
			}
			rec.Index = int(n)
		case clusterKey:
			if val.Kind != KindObject {
				return fmt.Errorf("detail: %s is not an object", clusterKey)
			}
			for _, m := range val.Obj {
				rec.Cluster = append(rec.Cluster, ClusterLevel{Level: m.Key, Label: m.Value.Text()})
			}
		default:
			rec.Fields = append(rec.Fields, Field{Name: key, Value: val})
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}

	*r = rec
	return nil
}
