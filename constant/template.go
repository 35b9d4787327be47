package constant

// CatalogTemplate is written by "onair catalog init" as a starting point for a new catalog.
const CatalogTemplate = `# Episode catalog for onair.
# Each episode may offer one audio file per language.
# Languages without a URL are listed as "Coming Soon...".

[[episodes]]
title = "Episode 1"
slug = "episode-1"

  [episodes.audio]
  ja = "https://example.com/audio/episode-1-ja.mp3"
  en = ""
`
