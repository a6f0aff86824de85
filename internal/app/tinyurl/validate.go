package tinyurl

import "regexp"

// urlRe: optional http(s) scheme, dotted domain (>=2 letter TLD) or IPv4 literal,
// optional port, path segments, query and fragment.
var urlRe = regexp.MustCompile(`(?i)^(https?://)?` +
	`((([a-z\d]([a-z\d-]*[a-z\d])*)\.)+[a-z]{2,}|` +
	`((\d{1,3}\.){3}\d{1,3}))` +
	`(:\d+)?(/[-a-z\d%_.~+]*)*` +
	`(\?[;&a-z\d%_.~+=-]*)?` +
	`(#[-a-z\d_]*)?$`)

var idRe = regexp.MustCompile(`^[A-Za-z0-9]{0,22}$`)

// IsValidURL is a purely syntactic check; no name resolution happens.
func IsValidURL(s string) bool {
	return s != "" && urlRe.MatchString(s)
}

// IsValidID accepts 0-22 alphanumerics. The empty string passes here and is
// rejected by the caller as an absent identifier.
func IsValidID(s string) bool {
	return idRe.MatchString(s)
}
