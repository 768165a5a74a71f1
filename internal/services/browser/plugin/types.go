package plugin

// MenuItem is one entry contributed to a browser menu.
type MenuItem struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Module   string `json:"module,omitempty"`
	Callback string `json:"callback,omitempty"`
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon,omitempty"`
	URL      string `json:"url,omitempty"`
	Target   string `json:"target,omitempty"`
	// Priority orders items within a menu, ascending.
	Priority int `json:"priority"`
}

// Panel describes a docking panel the browser script creates on load.
type Panel struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ShowTitle   bool   `json:"showTitle"`
	IsCloseable bool   `json:"isCloseable"`
	IsPrivate   bool   `json:"isPrivate"`
	Content     string `json:"content"`
	Priority    int    `json:"priority"`
}

// Node is one entry of the object browser tree. Its shape beyond the common
// fields is owned by the contributing plugin.
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Icon  string         `json:"icon,omitempty"`
	Inode bool           `json:"inode"`
	Type  string         `json:"_type"`
	Data  map[string]any `json:"data,omitempty"`
}
