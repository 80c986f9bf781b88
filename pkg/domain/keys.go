package domain

// KeyAliases maps symbolic key names used in documents to the bytes the
// terminal should receive.
var KeyAliases = map[string]string{
	"^C": "\x03",
	"^D": "\x04",
	"^L": "\x0c",
	"^Z": "\x1a",
	"^\\": "\x1c",
}

// ResolveKeys returns the literal bytes for a key alias, or s unchanged.
func ResolveKeys(s string) (string, bool) {
	if v, ok := KeyAliases[s]; ok {
		return v, true
	}
	return s, false
}
