package tuner

// OpeningBook returns the starting positions a tournament cycles through.
// Each entry is mirror-symmetric, so neither side starts with a structural
// edge; color alternation covers the first-move advantage.
func OpeningBook() []string {
	return []string{
		// The standard opening.
		"r1r11RG1r1r1/2r11r12/3r13/7/3b13/2b11b12/b1b11BG1b1b1 r",
		// A compact setup with one pre-built double stack per side.
		"r1r11RG1r1r1/2r21r12/7/7/7/2b11b22/b1b11BG1b1b1 r",
		// Towers pushed a row further towards the center.
		"r1r11RG1r1r1/3r13/2r11r12/7/2b11b12/3b13/b1b11BG1b1b1 r",
		// Wide wings with an open middle.
		"r1r11RG1r1r1/r12r12r1/7/7/7/b12b12b1/b1b11BG1b1b1 r",
	}
}
