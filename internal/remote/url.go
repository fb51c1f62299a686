package remote

import "strings"

// ResolveURL joins a backend-relative asset path onto the base address with
// exactly one separator. Absolute URLs are returned unchanged.
func ResolveURL(base, rel string) string {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}

func (c *Client) ResolveURL(rel string) string { return ResolveURL(c.base, rel) }
