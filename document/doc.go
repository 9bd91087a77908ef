// Package document models remindr documents: an ordered list of text,
// heading and divider blocks with a stable JSON wire format, the per-block
// transform menu, the "/" block menu and Markdown export.
//
// Text blocks carry formatting as richtext spans over UTF-8 byte offsets.
// Document values are not safe for concurrent mutation; the session package
// serializes access.
package document
