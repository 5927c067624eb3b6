// Package extensions computes the desired and installed extension instance
// lists of a project.
//
// The Planner is the entry point: Want builds the desired list from the
// declarative manifest (parsing references, resolving version selectors and
// substituting parameter placeholders), Have builds the installed list from
// the live registry. Both sides are normalized to InstanceSpec so an
// orchestrating deploy workflow can diff them.
//
// ResolveVersion is the pure selector-to-concrete-version step, usable on its
// own. The extension registry and the parameter source are collaborators
// behind the Registry and ParamSource interfaces; this package never talks to
// the network itself.
package extensions
