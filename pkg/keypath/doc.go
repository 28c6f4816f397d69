// Package keypath resolves dot-separated paths ("user.name") against the
// nested key/value maps that back a scope's model, and coerces the values it
// finds into their rendered string form.
//
// Intermediate segments may be any map keyed by strings or any slice or
// array (indexed by decimal position). Struct fields are not walked; a path
// that reaches a struct or scalar before its last segment is absent.
package keypath
