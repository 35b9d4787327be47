package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Rewind
	Forward
	Volume
	Mute
	Download
	Wave
	Search
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    " ",
		plain:   "+",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "👎",
		nerd:    " ",
		plain:   "x",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    " ",
		plain:   "~",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    " ",
		plain:   ">",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    " ",
		plain:   "||",
		kaomoji: "(－_－) zzZ",
		squares: "🟨",
	},
	Rewind: {
		emoji:   "⏪",
		nerd:    " ",
		plain:   "<<",
		kaomoji: "(<_<)",
		squares: "⬅️",
	},
	Forward: {
		emoji:   "⏩",
		nerd:    " ",
		plain:   ">>",
		kaomoji: "(>_>)",
		squares: "➡️",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    " ",
		plain:   "vol",
		kaomoji: "ヽ(°〇°)ﾉ",
		squares: "🟧",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    " ",
		plain:   "mute",
		kaomoji: "(｡•́︿•̀｡)",
		squares: "⬛",
	},
	Download: {
		emoji:   "📥",
		nerd:    " ",
		plain:   "dl",
		kaomoji: "(っ˘ڡ˘ς)",
		squares: "🟪",
	},
	Wave: {
		emoji:   "🎧",
		nerd:    " ",
		plain:   "~",
		kaomoji: "♪(´▽｀)",
		squares: "🟫",
	},
	Search: {
		emoji:   "🔍",
		nerd:    " ",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "⬜",
	},
}
