package core

// Route describes which auxiliary inputs are gathered before generation.
type Route struct {
	Context   bool // Look up the best matching prior context for the user
	Documents bool // Search the document index
}

// RouteFor returns the routing decision for a category.
// The mapping is total: unrecognized values route like ComplexQuery.
func RouteFor(c Category) Route {
	switch c {
	case SimpleRetrieval:
		return Route{Context: false, Documents: true}
	case ContextualRetrieval:
		return Route{Context: true, Documents: true}
	case GeneralQuery:
		return Route{Context: false, Documents: false}
	case HybridQuery:
		return Route{Context: true, Documents: true}
	case ComplexQuery:
		return Route{Context: false, Documents: false}
	default:
		return RouteFor(ComplexQuery)
	}
}
