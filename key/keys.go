// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Player Engine - these keys select and tune the external media engine.
const (
	Player         = "player.default"
	PlayerLanguage = "player.language"
	PlayerRewind   = "player.rewind_seconds"
	PlayerForward  = "player.forward_seconds"
	PlayerVolume   = "player.volume"
)

// Episode Catalog - these keys locate the trigger source.
const (
	CatalogPath  = "catalog.path"
	CatalogWatch = "catalog.watch"
)

// Downloads - these keys configure where fetched episodes are saved.
const (
	DownloadsPath = "downloads.path"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
	TUICompactBar  = "tui.compact_bar"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
