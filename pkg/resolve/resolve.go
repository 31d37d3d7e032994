// Package resolve joins the id space of a registry with display names.
package resolve

// KeyLookup exposes the key registered under each id, indexed by id.
// *registry.Registry satisfies it.
type KeyLookup interface {
	Keys() []string
}

// Labels composes id -> key with key -> name. Ids whose key has no entry in
// names are omitted from the result.
func Labels(keys KeyLookup, names map[string]string) map[int]string {
	ks := keys.Keys()
	labels := make(map[int]string, len(ks))
	for id, key := range ks {
		if name, ok := names[key]; ok {
			labels[id] = name
		}
	}
	return labels
}

// Missing returns the keys, in id order, that have no entry in names.
func Missing(keys KeyLookup, names map[string]string) []string {
	var missing []string
	for _, key := range keys.Keys() {
		if _, ok := names[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
