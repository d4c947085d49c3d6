package ovlkit

import (
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ComponentKind identifies one of the fixed overlay widget types.
// The catalog is immutable and defined at build time; the Registry is the
// single source of truth for valid component strings across the protocol.
type ComponentKind string

const (
	KindBrandFollowCard ComponentKind = "brandFollowCard"
	KindItemCard        ComponentKind = "itemCard"
	KindRewardBadge     ComponentKind = "rewardBadge"
	KindExploreButton   ComponentKind = "exploreButton"
)

// ComponentPayload is the data attached to a component: field name to
// string/boolean value. Payloads are opaque beyond shape validation - the
// lifecycle core never interprets their semantic content, and unknown extra
// fields are carried through untouched.
type ComponentPayload map[string]any

// Clone returns a shallow copy of the payload. A nil payload clones to nil.
func (p ComponentPayload) Clone() ComponentPayload {
	if p == nil {
		return nil
	}
	out := make(ComponentPayload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// kindDef holds the compiled schema and catalog metadata for one kind.
type kindDef struct {
	schema   *jsonschema.Schema
	defaults ComponentPayload
	pinned   bool
}

// Payload shape constraints per kind, expressed as JSON Schema. Extra fields
// are deliberately left unconstrained (no additionalProperties:false) so
// newer hosts can ship fields older surfaces ignore.
var kindSchemas = map[ComponentKind]struct {
	source   string
	defaults ComponentPayload
	pinned   bool
}{
	KindBrandFollowCard: {
		source: `{
			"type": "object",
			"required": ["brandName", "followers"],
			"properties": {
				"brandName":  {"type": "string"},
				"followers":  {"type": "string"},
				"logoUrl":    {"type": "string"},
				"isVerified": {"type": "boolean"}
			}
		}`,
		defaults: ComponentPayload{"isVerified": true},
	},
	KindItemCard: {
		source: `{
			"type": "object",
			"required": ["imageUrl", "currentPrice"],
			"properties": {
				"imageUrl":      {"type": "string"},
				"currentPrice":  {"type": "string"},
				"originalPrice": {"type": "string"},
				"discount":      {"type": "string"},
				"badge":         {"type": "string"}
			}
		}`,
	},
	KindRewardBadge: {
		source: `{
			"type": "object",
			"required": ["points"],
			"properties": {
				"points": {"type": "string"},
				"label":  {"type": "string"}
			}
		}`,
	},
	KindExploreButton: {
		source: `{"type": "object"}`,
		pinned: true,
	},
}

// Registry is the static catalog of known component kinds and their payload
// schemas. Schemas compile once at construction; validation afterwards is
// allocation-light and safe for concurrent use.
type Registry struct {
	kinds map[ComponentKind]*kindDef
}

// NewRegistry creates the component catalog.
// Panics if a built-in schema fails to compile - that is a programming
// error, not a runtime condition.
func NewRegistry() *Registry {
	reg := &Registry{kinds: make(map[ComponentKind]*kindDef, len(kindSchemas))}
	for kind, def := range kindSchemas {
		sch, err := jsonschema.CompileString(string(kind)+".json", def.source)
		if err != nil {
			panic(fmt.Sprintf("ovlkit: failed to compile schema for %s: %v", kind, err))
		}
		reg.kinds[kind] = &kindDef{
			schema:   sch,
			defaults: def.defaults,
			pinned:   def.pinned,
		}
	}
	return reg
}

// IsKnownKind reports whether s names a registered component kind.
func (r *Registry) IsKnownKind(s string) bool {
	_, ok := r.kinds[ComponentKind(s)]
	return ok
}

// Pinned reports whether kind is permanently visible and rejects control
// commands (show/hide/update). Unknown kinds report false.
func (r *Registry) Pinned(kind ComponentKind) bool {
	def, ok := r.kinds[kind]
	return ok && def.pinned
}

// Kinds returns all registered kinds in stable (sorted) order.
func (r *Registry) Kinds() []ComponentKind {
	out := make([]ComponentKind, 0, len(r.kinds))
	for kind := range r.kinds {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SchemaFor returns the compiled payload schema for kind.
func (r *Registry) SchemaFor(kind ComponentKind) (*jsonschema.Schema, error) {
	def, ok := r.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, kind)
	}
	return def.schema, nil
}

// Validate checks payload against the kind's schema. A nil payload validates
// as an empty object, which fails for kinds with required fields.
func (r *Registry) Validate(kind ComponentKind, payload ComponentPayload) error {
	def, ok := r.kinds[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, kind)
	}
	v := map[string]any(payload)
	if v == nil {
		v = map[string]any{}
	}
	if err := def.schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, kind, err)
	}
	return nil
}

// ApplyDefaults returns a copy of payload with the kind's default field
// values filled in where absent (e.g. brandFollowCard's isVerified defaults
// true). Unknown kinds and kinds without defaults return the payload as is.
func (r *Registry) ApplyDefaults(kind ComponentKind, payload ComponentPayload) ComponentPayload {
	def, ok := r.kinds[kind]
	if !ok || len(def.defaults) == 0 {
		return payload
	}
	out := payload.Clone()
	if out == nil {
		out = ComponentPayload{}
	}
	for k, v := range def.defaults {
		if _, present := out[k]; !present {
			out[k] = v
		}
	}
	return out
}
