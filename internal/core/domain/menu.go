package domain

import "fmt"

const (
	LoginPath       = "/login"
	ForgotPath      = "/forget"
	DefaultHomePath = "/dashboard"
)

// PublicPath reports whether a path is reachable without a session.
func PublicPath(path string) bool {
	return path == LoginPath || path == ForgotPath
}

// MenuNode is one entry of the static console menu: either a leaf
// (navigable path plus the dataset its view renders) or a group holding an
// ordered list of leaves.
type MenuNode struct {
	Path     string
	Title    string
	Icon     string
	View     string // dataset identifier, empty for groups and plain views
	Children []MenuNode
}

// IsGroup reports whether the node only exists to hold children.
func (n MenuNode) IsGroup() bool { return len(n.Children) > 0 }

// MenuTable is the declarative menu description, defined once at process
// start and never mutated afterwards. Leaf paths are unique across the
// whole table; NewMenuTable rejects duplicates.
type MenuTable struct {
	nodes []MenuNode
}

func NewMenuTable(nodes ...MenuNode) (MenuTable, error) {
	seen := make(map[string]struct{})
	var walk func(n MenuNode) error
	walk = func(n MenuNode) error {
		if n.IsGroup() {
			for _, c := range n.Children {
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		}
		if _, dup := seen[n.Path]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateMenuPath, n.Path)
		}
		seen[n.Path] = struct{}{}
		return nil
	}
	for _, n := range nodes {
		if err := walk(n); err != nil {
			return MenuTable{}, err
		}
	}
	return MenuTable{nodes: nodes}, nil
}

// MustMenuTable is NewMenuTable for static tables declared at init time.
func MustMenuTable(nodes ...MenuNode) MenuTable {
	t, err := NewMenuTable(nodes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Nodes returns the top-level menu nodes in declaration order.
func (t MenuTable) Nodes() []MenuNode { return t.nodes }

// Flatten produces the single ordered sequence of route descriptors:
// groups contribute their children, leaves contribute themselves.
func (t MenuTable) Flatten() []RouteEntry {
	var out []RouteEntry
	for _, n := range t.nodes {
		if n.IsGroup() {
			for _, c := range n.Children {
				out = append(out, RouteEntry{Path: c.Path, Title: c.Title, Icon: c.Icon, View: c.View})
			}
			continue
		}
		out = append(out, RouteEntry{Path: n.Path, Title: n.Title, Icon: n.Icon, View: n.View})
	}
	return out
}

// RouteEntry is one live, navigable console route.
type RouteEntry struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
	View  string `json:"view,omitempty"`
}

// RouteTable is the materialized form of a MenuTable. It is immutable once
// built; a new login builds a fresh table and swaps it in atomically, so
// re-materialization can never accumulate duplicate entries.
type RouteTable struct {
	Home    string
	entries []RouteEntry
	byPath  map[string]RouteEntry
}

// BuildRouteTable is the pure materialization step: flatten the menu and
// resolve the home path. Home priority: explicit configuration, then the
// server-suggested path, then DefaultHomePath.
func BuildRouteTable(menu MenuTable, configuredHome, suggestedHome string) *RouteTable {
	entries := menu.Flatten()
	byPath := make(map[string]RouteEntry, len(entries))
	for _, e := range entries {
		byPath[e.Path] = e
	}
	return &RouteTable{
		Home:    ResolveHome(configuredHome, suggestedHome),
		entries: entries,
		byPath:  byPath,
	}
}

// ResolveHome picks the landing page: configured > server-suggested > default.
func ResolveHome(configured, suggested string) string {
	if configured != "" {
		return configured
	}
	if suggested != "" {
		return suggested
	}
	return DefaultHomePath
}

// Lookup resolves a navigable path to its route entry.
func (t *RouteTable) Lookup(path string) (RouteEntry, bool) {
	e, ok := t.byPath[path]
	return e, ok
}

// Entries returns the routes in menu order.
func (t *RouteTable) Entries() []RouteEntry { return t.entries }

func (t *RouteTable) Len() int { return len(t.entries) }

// ConsoleMenu is the IronBull admin console menu. Static by design: the
// platform does not serve menus from the backend.
var ConsoleMenu = MustMenuTable(
	MenuNode{Path: "/dashboard", Title: "Dashboard", Icon: "home", View: "dashboard"},
	MenuNode{Path: "/trading", Title: "Trading", Icon: "order", Children: []MenuNode{
		{Path: "/trading/orders", Title: "Orders", View: "trading.orders"},
		{Path: "/trading/fills", Title: "Fills", View: "trading.fills"},
		{Path: "/trading/positions", Title: "Positions", View: "trading.positions"},
		{Path: "/trading/accounts", Title: "Accounts", View: "trading.accounts"},
		{Path: "/trading/transactions", Title: "Transactions", View: "trading.transactions"},
		{Path: "/trading/pending", Title: "Pending Orders", View: "trading.pending"},
		{Path: "/trading/analytics", Title: "Analytics", View: "analytics.performance"},
		{Path: "/trading/risk", Title: "Risk", View: "analytics.risk"},
	}},
	MenuNode{Path: "/strategy", Title: "Strategies", Icon: "opportunity", Children: []MenuNode{
		{Path: "/strategy/list", Title: "Strategy Catalog", View: "strategy.list"},
		{Path: "/strategy/tenant-strategies", Title: "Tenant Strategies", View: "strategy.tenant"},
		{Path: "/strategy/bindings", Title: "Strategy Bindings", View: "strategy.bindings"},
	}},
	MenuNode{Path: "/monitor", Title: "Monitoring", Icon: "board", Children: []MenuNode{
		{Path: "/monitor/signal-control", Title: "Signal Monitor", View: "monitor.signals"},
		{Path: "/monitor/signal-history", Title: "Signal History", View: "monitor.history"},
		{Path: "/monitor/sync", Title: "Sync & Positions", View: "monitor.sync"},
		{Path: "/monitor/nodes", Title: "Execution Nodes", View: "monitor.nodes"},
	}},
	MenuNode{Path: "/user", Title: "Users & Accounts", Icon: "custom", Children: []MenuNode{
		{Path: "/user/manage", Title: "Users", View: "user.manage"},
		{Path: "/user/exchange-accounts", Title: "Exchange Accounts", View: "user.exchange"},
	}},
	MenuNode{Path: "/finance", Title: "Finance", Icon: "finance", Children: []MenuNode{
		{Path: "/finance/withdrawals", Title: "Withdrawals", View: "finance.withdrawals"},
		{Path: "/finance/pointcard-logs", Title: "Point Card Logs", View: "finance.pointcard"},
		{Path: "/finance/rewards", Title: "Rewards", View: "finance.rewards"},
		{Path: "/finance/profit-pools", Title: "Profit Pools", View: "finance.pools"},
	}},
	MenuNode{Path: "/system", Title: "System", Icon: "tools", Children: []MenuNode{
		{Path: "/system/tenants", Title: "Tenants", View: "system.tenants"},
		{Path: "/system/quota-plans", Title: "Quota Plans", View: "system.quota"},
		{Path: "/system/admins", Title: "Administrators", View: "system.admins"},
		{Path: "/system/audit-log", Title: "Audit Log", View: "system.audit"},
	}},
)
