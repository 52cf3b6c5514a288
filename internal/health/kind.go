package health

// Kind classifies a parsed front-matter mapping.
type Kind string

const (
	// KindBundle is a bundle definition carrying a "bundle" section.
	KindBundle Kind = "bundle"

	// KindAgent is an agent definition, recognized by a "meta" section.
	KindAgent Kind = "agent"
)

// AllKinds lists every kind in a stable order.
func AllKinds() []Kind {
	return []Kind{KindBundle, KindAgent}
}

// Classify determines the kind of a parsed configuration. The presence of a
// "meta" key marks an agent file; everything else is treated as a bundle.
func Classify(cfg map[string]any) Kind {
	if _, ok := cfg["meta"]; ok {
		return KindAgent
	}
	return KindBundle
}
