package browser

import (
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin/luaplugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugins/about"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugins/help"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugins/server"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugins/servergroup"
	pluginsettings "github.com/pgconsole/pgconsole/internal/services/browser/plugins/settings"
)

// Version is reported by the About panel.
var Version = "dev"

// DefaultRegistry installs the built-in plugins followed by scripted ones.
// Server groups are the only built-in root provider.
func DefaultRegistry(groups servergroup.Lister, scripted luaplugin.Set) (plugin.Registry, error) {
	groupNode := servergroup.New(groups)
	cfg := plugin.RegistryConfig{
		Modules: []plugin.Plugin{
			pluginsettings.New(),
			help.New(help.DefaultLinks),
			about.New(Version),
		},
		Nodes: []plugin.Plugin{
			groupNode,
			server.New(),
		},
		Children: []plugin.NodeProvider{groupNode},
	}
	return plugin.NewRegistry(scripted.Apply(cfg))
}
