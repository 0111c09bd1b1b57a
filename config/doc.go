// Package config supplies ready-made config providers for the container's
// Config dependency descriptor: an in-memory Map, a process-environment /
// .env provider, and a YAML file loader.
//
// All providers share the same lookup contract:
//
//	Get(name, placeholder, format string) (any, error)
//
// name is a dotted path ("section.key"), placeholder the fallback when the
// name is absent, and format one of the Format* tags controlling the type of
// the returned value.
package config
