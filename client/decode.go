package client

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// metaPrescanSize is how much of an HTML body is searched for a <meta> charset.
const metaPrescanSize = 1024

// decodeText transcodes body to UTF-8. The charset declared in contentType
// wins; without one a BOM or an HTML <meta> declaration is used, and
// anything else is read as UTF-8. Invalid byte sequences become U+FFFD.
func decodeText(body []byte, contentType string) (string, error) {
	enc, name, err := textEncoding(body, contentType)
	if err != nil {
		return "", err
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decoding %s body: %w", name, err)
	}

	return string(out), nil
}

// textEncoding picks the encoding for body. An explicitly declared charset
// that is unknown is an error rather than a guess.
func textEncoding(body []byte, contentType string) (encoding.Encoding, string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err == nil {
		if label := params["charset"]; label != "" {
			enc, name := charset.Lookup(label)
			if enc == nil {
				return nil, "", fmt.Errorf("unsupported charset %q", label)
			}

			return enc, name, nil
		}
	}

	// Without a content type, certain means a BOM was found.
	if enc, name, certain := charset.DetermineEncoding(body, ""); certain {
		return enc, name, nil
	}

	if mediaType == "" || mediaType == "text/html" || mediaType == "application/xhtml+xml" {
		if label := metaCharset(body); label != "" {
			if enc, name := charset.Lookup(label); enc != nil {
				return enc, name, nil
			}
		}
	}

	return unicode.UTF8, "utf-8", nil
}

// metaCharset returns the charset named by the first <meta charset> or
// <meta http-equiv="Content-Type"> tag near the start of body.
func metaCharset(body []byte) string {
	if len(body) > metaPrescanSize {
		body = body[:metaPrescanSize]
	}

	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" {
				continue
			}

			var httpEquiv, content string
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "charset":
					return strings.TrimSpace(string(val))
				case "http-equiv":
					httpEquiv = strings.ToLower(string(val))
				case "content":
					content = string(val)
				}
			}

			if httpEquiv != "content-type" {
				continue
			}
			if _, params, err := mime.ParseMediaType(content); err == nil && params["charset"] != "" {
				return params["charset"]
			}
		}
	}
}
