package game

// Keyboard tracks the best known mark per letter, the way the on-screen keyboard colors keys.
// A correct key never changes, and a present key is never downgraded to absent.
type Keyboard map[byte]Mark

// Update returns a new keyboard with letter set to m unless that would lose information.
func (k Keyboard) Update(letter byte, m Mark) Keyboard {
	if prev, ok := k[letter]; ok && prev.rank() >= m.rank() {
		return k
	}
	next := make(Keyboard, len(k)+1)
	for l, v := range k {
		next[l] = v
	}
	next[letter] = m
	return next
}

// Apply folds a whole guess into the keyboard.
func (k Keyboard) Apply(guess string, f Feedback) Keyboard {
	for i := range f {
		if i < len(guess) {
			k = k.Update(guess[i], f[i])
		}
	}
	return k
}

// Status returns the mark for letter, or "" if the letter has not been guessed.
func (k Keyboard) Status(letter byte) Mark {
	return k[letter]
}
