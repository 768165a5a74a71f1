// Package luaplugin loads browser plugins written in Lua.
//
// A script builds its plugin with Plugin.new("id"), calls contribution
// methods on it and returns it:
//
//	local p = Plugin.new("reports")
//	p:tools_menu({name = "mnu_reports", label = "Reports", priority = 40})
//	p:css_snippet(".icon-report { color: red; }")
//	return p
//
// Scripts run once at load time. The resulting plugins hold plain Go values
// and are safe for concurrent use.
package luaplugin
