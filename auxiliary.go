package interact3d

// behaviorAuxPrefix is the reserved key prefix behaviors use to store their
// per-element state in AttachedValues.Objects, per §4.7.
const behaviorAuxPrefix = "Internal.Behavior:"

func behaviorAuxKey(id BehaviorID) string {
	return behaviorAuxPrefix + id.String()
}

// AuxiliaryObject is an opaque, per-element piece of state owned either by
// the host (arbitrary payload) or by a behavior (under the reserved key
// prefix above). Copy/UpdateFrom let reconciliation propagate state across
// prototype clones without the container needing to know the concrete type.
type AuxiliaryObject interface {
	Copy() AuxiliaryObject
	UpdateFrom(other AuxiliaryObject)
}

// AttachedValues is the bag of N floats, N strings, and keyed opaque
// objects described in §3. It is the backing store for both host-supplied
// per-element user data and behavior-private state.
type AttachedValues struct {
	Values  []float32
	Strings []string
	Objects map[string]AuxiliaryObject
}

// NewAttachedValues returns an empty bag with Objects initialized so callers
// never need a nil check before writing into it.
func NewAttachedValues() *AttachedValues {
	return &AttachedValues{Objects: make(map[string]AuxiliaryObject)}
}

// Fill resizes Values to length n: per spec.md §9's mandated semantics, it
// resizes to the target length, zero-fills any newly added slots, and
// leaves the first min(old len, n) entries untouched.
func (av *AttachedValues) Fill(n int) {
	if av.Values == nil {
		av.Values = make([]float32, n)
		return
	}
	if n == len(av.Values) {
		return
	}
	resized := make([]float32, n)
	copy(resized, av.Values)
	av.Values = resized
}

// Object returns the auxiliary object stored under key, if any.
func (av *AttachedValues) Object(key string) (AuxiliaryObject, bool) {
	if av.Objects == nil {
		return nil, false
	}
	o, ok := av.Objects[key]
	return o, ok
}

// SetObject stores an auxiliary object under key, creating Objects lazily.
func (av *AttachedValues) SetObject(key string, obj AuxiliaryObject) {
	if av.Objects == nil {
		av.Objects = make(map[string]AuxiliaryObject)
	}
	av.Objects[key] = obj
}

// Copy deep-copies the bag: slices are duplicated and every AuxiliaryObject
// is copied through its own Copy() hook, never shared by reference.
func (av *AttachedValues) Copy() *AttachedValues {
	out := &AttachedValues{
		Values:  append([]float32(nil), av.Values...),
		Strings: append([]string(nil), av.Strings...),
		Objects: make(map[string]AuxiliaryObject, len(av.Objects)),
	}
	for k, v := range av.Objects {
		out.Objects[k] = v.Copy()
	}
	return out
}

// UpdateFrom merges another bag's contents in place, calling UpdateFrom on
// any object keys present in both, and Copy on keys only present in other.
func (av *AttachedValues) UpdateFrom(other *AttachedValues) {
	if other == nil {
		return
	}
	av.Values = append([]float32(nil), other.Values...)
	av.Strings = append([]string(nil), other.Strings...)
	if av.Objects == nil {
		av.Objects = make(map[string]AuxiliaryObject)
	}
	for k, v := range other.Objects {
		if existing, ok := av.Objects[k]; ok {
			existing.UpdateFrom(v)
		} else {
			av.Objects[k] = v.Copy()
		}
	}
}
