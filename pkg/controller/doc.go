// Package controller attaches scopes to the elements that declare a
// controller name and runs the document-wide edit propagation that feeds
// view edits back into the owning scope.
//
// An App is the per-document runtime. Its edit listener is installed lazily
// and exactly once, on the first controller attached, no matter how many
// controllers follow.
package controller
