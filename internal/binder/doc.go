// Package binder keeps on-screen widgets and the parameter store in step.
//
// A screen is registered once with a list of bindings, each pairing a
// WidgetSpec with a parameter name. Rendering asks a Toolkit to build the
// widgets. From then on every edit a user makes goes through OnUserEdit,
// which parses the text, validates it against the parameter and either
// stores it or reverts the widget. Changes made outside a widget go through
// OnExternalChange so every screen showing that parameter is updated.
//
// The registry holds no values of its own. The store is the only source of
// truth and widgets only ever display what it holds.
package binder
