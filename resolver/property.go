package resolver

import "github.com/rulelang/rulec/types"

// ResolveProperty resolves owner.propertyName into the property's Type:
//
//   - If owner is a Collection, resolve on the element type (this is what
//     lets "list.name"-style navigation shorthand work; see typeinfer and
//     codegen's collection-navigation lowering).
//   - If owner is a Record, look up the zero-arg accessor named exactly
//     propertyName.
//   - Otherwise, try in order: "getProperty" (capitalized), "isProperty",
//     "property".
//
// Missing properties yield Unknown; this is never fatal.
func (r *Resolver) ResolveProperty(owner types.Type, propertyName string) types.Type {
	if types.IsCollection(owner) {
		return r.ResolveProperty(types.ElementType(owner), propertyName)
	}

	key := owner.SimpleName() + "#" + propertyName
	r.mu.Lock()
	if cached, ok := r.propCache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	t := r.resolvePropertyUncached(owner, propertyName)

	r.mu.Lock()
	r.propCache[key] = t
	r.mu.Unlock()
	return t
}

func (r *Resolver) resolvePropertyUncached(owner types.Type, propertyName string) types.Type {
	class, ok := owner.(*types.Class)
	if !ok || r.loader == nil {
		return &types.Unknown{Hint: "cannot resolve property " + propertyName + " on " + owner.SimpleName()}
	}

	ref, ok := r.loader.LoadClass(class.QualifiedName)
	if !ok {
		return &types.Unknown{Hint: "unknown class " + class.QualifiedName}
	}

	if ref.IsRecordType() {
		if typeName, ok := ref.ZeroArgMember(propertyName); ok {
			return r.Resolve(typeName)
		}
		return &types.Unknown{Hint: "no record component " + propertyName}
	}

	for _, candidate := range beanAccessorNames(propertyName) {
		if typeName, ok := ref.ZeroArgMember(candidate); ok {
			return r.Resolve(typeName)
		}
	}
	return &types.Unknown{Hint: "no accessor for property " + propertyName}
}

// beanAccessorNames returns the ordered candidate method names tried for
// a non-record owner: getProperty, isProperty, property.
func beanAccessorNames(property string) []string {
	cap := capitalizeFirst(property)
	return []string{"get" + cap, "is" + cap, property}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
