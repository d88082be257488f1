package styles

// Trust state symbols shown by "list" and "trust list".
const (
	SymbolAccepted = "✓"
	SymbolDisabled = "✕"
	SymbolPending  = "?"
	SymbolIgnored  = "-"
)

// TrustState renders a colored symbol and label for a trust state name
// ("accepted", "trust-all", "disabled", "changed", "new", "ignored").
func TrustState(state string) string {
	switch state {
	case "accepted", "trust-all":
		return SuccessStyle.Render(SymbolAccepted + " " + state)
	case "disabled":
		return ErrorStyle.Render(SymbolDisabled + " " + state)
	case "changed", "new":
		return WarningStyle.Render(SymbolPending + " " + state)
	case "ignored":
		return MutedStyle.Render(SymbolIgnored + " " + state)
	default:
		return state
	}
}
