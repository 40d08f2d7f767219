package fakeprovider

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()_+"
)

// Password returns a password of the given length holding at least one
// character of every selected class. With no class selected, lowercase is used.
func (p *Provider) Password(length int, special, digits, upper, lower bool) string {
	var classes []string
	if special {
		classes = append(classes, specialChars)
	}
	if digits {
		classes = append(classes, digitChars)
	}
	if upper {
		classes = append(classes, upperChars)
	}
	if lower || len(classes) == 0 {
		classes = append(classes, lowerChars)
	}
	if length < len(classes) {
		length = len(classes)
	}

	all := ""
	for _, c := range classes {
		all += c
	}

	out := make([]byte, 0, length)
	for _, c := range classes {
		out = append(out, c[p.intN(len(c))])
	}
	for len(out) < length {
		out = append(out, all[p.intN(len(all))])
	}

	p.mu.Lock()
	p.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	p.mu.Unlock()

	return string(out)
}
