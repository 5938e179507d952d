// SPDX-License-Identifier: GPL-3.0-or-later
package unsubscribe

import (
	"strings"

	"golang.org/x/net/html"
)

// UnsubscribeLink finds the first opt-out link in an email body. Anchors
// qualify when their href or visible text mentions unsubscribing, and only
// http(s) targets count; mailto opt-outs cannot be driven by a browser.
func UnsubscribeLink(body string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", false
	}

	var link string
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if len(link) > 0 {
			return
		}

		if node.Type == html.ElementNode && node.Data == "a" {
			href := attribute(node, "href")
			if isWebLink(href) && (mentionsUnsubscribe(href) || mentionsUnsubscribe(anchorText(node))) {
				link = href
				return
			}
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return link, len(link) > 0
}

func attribute(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

func anchorText(node *html.Node) string {
	var text strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			text.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return text.String()
}

func mentionsUnsubscribe(text string) bool {
	lowered := strings.ToLower(text)
	return strings.Contains(lowered, "unsubscribe") || strings.Contains(lowered, "opt out") || strings.Contains(lowered, "opt-out")
}

func isWebLink(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}
