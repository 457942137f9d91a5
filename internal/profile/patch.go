package profile

// Optional wraps a value with an explicit presence marker, so a patch can
// distinguish "leave this field alone" from "set this field to its zero
// value". Truthiness-based merging cannot express clearing a field; this
// can: Set(nil) on the age field is a deliberate clear, Unset leaves the
// stored value untouched.
type Optional[T any] struct {
	value T
	set   bool
}

// Set returns an Optional holding the given value.
func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Unset returns an absent Optional.
func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Value returns the held value and whether it was present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.set
}

// Patch is a merge-patch for a profile. Fields left unset preserve the
// stored value; fields that are set overwrite it, including overwriting
// with nil/empty to clear. The ID is never patchable: identity is assigned
// by the store on first update and immutable afterward.
type Patch struct {
	Name   Optional[string]
	Age    Optional[*int]
	Gender Optional[Gender]
}

// WithName sets the name field of the patch.
func (p Patch) WithName(name string) Patch {
	p.Name = Set(name)
	return p
}

// WithAge sets the age field of the patch.
func (p Patch) WithAge(age int) Patch {
	p.Age = Set(&age)
	return p
}

// ClearAge marks the age field to be cleared.
func (p Patch) ClearAge() Patch {
	p.Age = Set[*int](nil)
	return p
}

// WithGender sets the gender field of the patch.
func (p Patch) WithGender(g Gender) Patch {
	p.Gender = Set(g)
	return p
}

// ClearGender marks the gender field to be cleared.
func (p Patch) ClearGender() Patch {
	p.Gender = Set(Gender(""))
	return p
}

// IsEmpty reports whether the patch carries no changes.
func (p Patch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Age.IsSet() && !p.Gender.IsSet()
}

// apply merges the patch onto a base profile and returns the result.
// The base's ID always survives.
func (p Patch) apply(base Profile) Profile {
	merged := base

	if name, ok := p.Name.Value(); ok {
		merged.Name = name
	}
	if age, ok := p.Age.Value(); ok {
		if age != nil {
			v := *age
			merged.Age = &v
		} else {
			merged.Age = nil
		}
	}
	if gender, ok := p.Gender.Value(); ok {
		merged.Gender = gender
	}

	return merged
}
