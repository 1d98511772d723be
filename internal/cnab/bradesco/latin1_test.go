package bradesco

import "golang.org/x/text/encoding/charmap"

func encodeLatin1(s string) (string, error) {
	return charmap.ISO8859_1.NewEncoder().String(s)
}
