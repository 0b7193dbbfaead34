package session

// LetterSequence returns the A-Z learning ladder, one letter per target.
func LetterSequence() []string {
	targets := make([]string, 0, 26)
	for ch := 'A'; ch <= 'Z'; ch++ {
		targets = append(targets, string(ch))
	}
	return targets
}

// DigitSequence returns the 0-9 ladder, one digit per target.
func DigitSequence() []string {
	targets := make([]string, 0, 10)
	for ch := '0'; ch <= '9'; ch++ {
		targets = append(targets, string(ch))
	}
	return targets
}
