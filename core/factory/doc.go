// Package factory provides a generic registry that builds modules, such as
// metrics sinks, from a type name and a map of raw settings.
package factory
