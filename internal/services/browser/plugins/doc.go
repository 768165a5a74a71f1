// Package plugins groups the feature modules and node types shipped with the
// browser. Each subpackage exposes a constructor returning a plugin.Plugin;
// plugins never import browser modules.
package plugins
