package luaplugin

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

const pluginTypeName = "browser_plugin"

func run(src, chunkName string) (*Plugin, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerPluginType(state)

	if err := lua.LoadBuffer(state, src, chunkName, ""); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("script must return Plugin")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	p, ok := ud.(*Plugin)
	if !ok || p == nil {
		return nil, fmt.Errorf("script returned invalid Plugin")
	}
	return p, nil
}

func registerPluginType(state *lua.State) {
	lua.NewMetaTable(state, pluginTypeName)
	state.NewTable()
	lua.SetFunctions(state, pluginMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, pluginConstructor, 0)
	state.SetGlobal("Plugin")
}

var pluginConstructor = []lua.RegistryFunction{
	{Name: "new", Function: pluginNew},
}

var pluginMethods = []lua.RegistryFunction{
	{Name: "file_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.file })},
	{Name: "edit_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.edit })},
	{Name: "tools_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.tools })},
	{Name: "management_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.management })},
	{Name: "help_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.help })},
	{Name: "standard_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.standard })},
	{Name: "create_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.create })},
	{Name: "context_menu", Function: menuMethod(func(p *Plugin) *[]plugin.MenuItem { return &p.context })},
	{Name: "panel", Function: pluginPanel},
	{Name: "stylesheet", Function: stringMethod(func(p *Plugin) *[]string { return &p.stylesheets })},
	{Name: "script", Function: stringMethod(func(p *Plugin) *[]string { return &p.scripts })},
	{Name: "script_snippet", Function: stringMethod(func(p *Plugin) *[]string { return &p.jsSnippets })},
	{Name: "css_snippet", Function: stringMethod(func(p *Plugin) *[]string { return &p.cssSnippets })},
	{Name: "node", Function: pluginNode},
}

func pluginNew(state *lua.State) int {
	id := strings.TrimSpace(lua.CheckString(state, 1))
	if id == "" {
		lua.ArgumentError(state, 1, "plugin id is required")
		return 0
	}
	state.PushUserData(&Plugin{id: id})
	lua.SetMetaTableNamed(state, pluginTypeName)
	return 1
}

func checkPlugin(state *lua.State) *Plugin {
	ud := lua.CheckUserData(state, 1, pluginTypeName)
	if p, ok := ud.(*Plugin); ok && p != nil {
		return p
	}
	lua.ArgumentError(state, 1, "plugin expected")
	return nil
}

func menuMethod(target func(*Plugin) *[]plugin.MenuItem) lua.Function {
	return func(state *lua.State) int {
		p := checkPlugin(state)
		lua.CheckType(state, 2, lua.TypeTable)
		fields := tableToMap(state, 2)
		item := plugin.MenuItem{
			Name:     stringField(fields, "name"),
			Label:    stringField(fields, "label"),
			Module:   stringField(fields, "module"),
			Callback: stringField(fields, "callback"),
			Category: stringField(fields, "category"),
			Icon:     stringField(fields, "icon"),
			URL:      stringField(fields, "url"),
			Target:   stringField(fields, "target"),
			Priority: intField(fields, "priority"),
		}
		if item.Name == "" || item.Label == "" {
			lua.ArgumentError(state, 2, "menu item needs name and label")
			return 0
		}
		items := target(p)
		*items = append(*items, item)
		return 0
	}
}

func stringMethod(target func(*Plugin) *[]string) lua.Function {
	return func(state *lua.State) int {
		p := checkPlugin(state)
		value := lua.CheckString(state, 2)
		values := target(p)
		*values = append(*values, value)
		return 0
	}
}

func pluginPanel(state *lua.State) int {
	p := checkPlugin(state)
	lua.CheckType(state, 2, lua.TypeTable)
	fields := tableToMap(state, 2)
	panel := plugin.Panel{
		Name:        stringField(fields, "name"),
		Title:       stringField(fields, "title"),
		Width:       intField(fields, "width"),
		Height:      intField(fields, "height"),
		ShowTitle:   boolField(fields, "show_title"),
		IsCloseable: boolField(fields, "is_closeable"),
		IsPrivate:   boolField(fields, "is_private"),
		Content:     stringField(fields, "content"),
		Priority:    intField(fields, "priority"),
	}
	if panel.Name == "" {
		lua.ArgumentError(state, 2, "panel needs a name")
		return 0
	}
	p.panels = append(p.panels, panel)
	return 0
}

func pluginNode(state *lua.State) int {
	p := checkPlugin(state)
	lua.CheckType(state, 2, lua.TypeTable)
	fields := tableToMap(state, 2)
	node := plugin.Node{
		ID:    stringField(fields, "id"),
		Label: stringField(fields, "label"),
		Icon:  stringField(fields, "icon"),
		Inode: boolField(fields, "inode"),
		Type:  stringField(fields, "type"),
	}
	if data, ok := fields["data"].(map[string]any); ok {
		node.Data = data
	}
	if node.ID == "" || node.Type == "" {
		lua.ArgumentError(state, 2, "node needs id and type")
		return 0
	}
	p.nodes = append(p.nodes, node)
	return 0
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case int:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func boolField(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns a slice for sequence tables and a map otherwise.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
