package initargs

import (
	"fmt"
	"strings"
)

// TopKey is the key of the array that wraps every serialized tree.
const TopKey = "_"

// KV is one node of an argument tree.
type KV struct {
	Key      string
	Value    string
	Children []KV
	array    bool
}

func NewKey(key string, value string) KV {
	return KV{Key: key, Value: value}
}

func NewArray(key string, children []KV) KV {
	return KV{Key: key, Children: append([]KV{}, children...), array: true}
}

// NewTop wraps children in the top-level array expected by the runtime.
func NewTop(children []KV) KV {
	return NewArray(TopKey, children)
}

func (kv KV) IsArray() bool {
	return kv.array
}

// Lookup walks the tree by child keys and returns the node at path.
func (kv KV) Lookup(path ...string) (KV, bool) {
	node := kv
	for _, key := range path {
		found := false
		for _, child := range node.Children {
			if child.Key == key {
				node = child
				found = true
				break
			}
		}
		if !found {
			return KV{}, false
		}
	}
	return node, true
}

// Flatten returns every leaf below kv keyed by its slash-joined path,
// relative to kv. A leaf flattens to its own key.
func (kv KV) Flatten() map[string]string {
	out := map[string]string{}
	if !kv.array {
		out[kv.Key] = kv.Value
		return out
	}
	for _, child := range kv.Children {
		flattenInto(out, "", child)
	}
	return out
}

func flattenInto(out map[string]string, prefix string, kv KV) {
	path := kv.Key
	if prefix != "" {
		path = prefix + "/" + kv.Key
	}
	if !kv.array {
		out[path] = kv.Value
		return
	}
	for _, child := range kv.Children {
		flattenInto(out, path, child)
	}
}

// Serialize renders the tree as a C source fragment. Output depends only on
// the tree, so equal trees serialize to identical text.
func (kv KV) Serialize() string {
	s := serializer{}
	s.b.WriteString("#include <initargs.h>\n\n")
	root := s.emit(kv)
	fmt.Fprintf(&s.b, "struct kv_entry *__initargs_root = &%s;\n", root)
	return s.b.String()
}

type serializer struct {
	b    strings.Builder
	next int
}

func (s *serializer) symbol() string {
	name := fmt.Sprintf("__initargs_autogen_%d", s.next)
	s.next++
	return name
}

// emit writes kv after its children and returns the symbol of its entry.
func (s *serializer) emit(kv KV) string {
	if !kv.array {
		name := s.symbol()
		fmt.Fprintf(&s.b, "static struct kv_entry %s = { .key = %s, .vtype = VTYPE_STR, .val = { .str = %s } };\n",
			name, cString(kv.Key), cString(kv.Value))
		return name
	}

	refs := make([]string, 0, len(kv.Children))
	for _, child := range kv.Children {
		refs = append(refs, "&"+s.emit(child))
	}
	kvs := "NULL"
	if len(refs) > 0 {
		kvs = s.symbol()
		fmt.Fprintf(&s.b, "static struct kv_entry *%s[] = { %s };\n", kvs, strings.Join(refs, ", "))
	}
	name := s.symbol()
	fmt.Fprintf(&s.b, "static struct kv_entry %s = { .key = %s, .vtype = VTYPE_ARR, .val = { .arr = { .sz = %d, .kvs = %s } } };\n",
		name, cString(kv.Key), len(refs), kvs)
	return name
}

// cString quotes value as a C string literal. Bytes outside printable ASCII
// are written as three-digit octal escapes.
func cString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, "\\%03o", c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
