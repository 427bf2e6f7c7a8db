package tui

func renderVersionWindow(version string) string {
	if version == "" {
		version = "N/A"
	}
	return appStyle.Render(overlayBoxStyle.Render(
		titleStyle.Render("passnode") + "\n\nversion: " + version + "\n\n" + helpStyle.Render("esc: close"),
	))
}
