package artisan

// Labels and icons cover the client enumeration plus "photographe",
// which the backend also accepts.
var metierLabels = map[string]string{
	"plombier":    "Plombier",
	"electricien": "Électricien",
	"macon":       "Maçon",
	"couturier":   "Couturier",
	"menuisier":   "Menuisier",
	"photographe": "Photographe",
}

var metierIcons = map[string]string{
	"plombier":    "🔧",
	"electricien": "⚡",
	"macon":       "🏗️",
	"couturier":   "🧵",
	"menuisier":   "🪚",
	"photographe": "📸",
}

// DefaultMetierIcon is shown for trades without a dedicated icon.
const DefaultMetierIcon = "👷"

// MetierLabel returns the display name of a trade, or the trade itself when unknown.
func MetierLabel(metier string) string {
	if label, ok := metierLabels[metier]; ok {
		return label
	}
	return metier
}

// MetierIcon returns the icon of a trade, or DefaultMetierIcon when unknown.
func MetierIcon(metier string) string {
	if icon, ok := metierIcons[metier]; ok {
		return icon
	}
	return DefaultMetierIcon
}

// KnownMetier reports whether the backend accepts metier.
func KnownMetier(metier string) bool {
	_, ok := metierLabels[metier]
	return ok
}
