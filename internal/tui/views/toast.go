package views

// Toast renders the message slot. An error wins over a success message.
func Toast(errText, success string) string {
	switch {
	case errText != "":
		return errorStyle.Render("✗ " + errText)
	case success != "":
		return successStyle.Render("✓ " + success)
	}
	return ""
}
