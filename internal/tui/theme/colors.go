package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorBrand    = lipgloss.Color("#F2B544") // logo, CTA, focused elements
	ColorLeads    = lipgloss.Color("#4FC3F7") // lead metrics
	ColorResponse = lipgloss.Color("#00F19F") // response rate ring
	ColorMandates = lipgloss.Color("#B39DDB") // mandates and viewings
	ColorPipeline = lipgloss.Color("#FF8A65") // pipeline bars
	ColorInsight  = lipgloss.Color("#80CBC4") // assistant text
)

var (
	ColorPositive = lipgloss.Color("#16EC06")
	ColorWarning  = lipgloss.Color("#FFDE00")
	ColorNegative = lipgloss.Color("#FF0026")
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // app background
	ColorBgLight = lipgloss.Color("#283339") // tile borders, empty tracks
)
