package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// verifyModuleLinks parses the written landing page and checks every module
// record is reachable through an anchor. A missing anchor is reported but
// not fatal: themes are free to link modules however they like.
func verifyModuleLinks(indexPath string, records []ModuleRecord) error {
	file, err := os.Open(filepath.Clean(indexPath))
	if err != nil {
		return fmt.Errorf("failed to reopen landing page: %w", err)
	}
	defer func() {
		_ = file.Close() // read-only
	}()

	doc, err := html.Parse(file)
	if err != nil {
		return fmt.Errorf("landing page is not parseable HTML: %w", err)
	}

	hrefs := collectHrefs(doc)
	for _, rec := range records {
		if !anyHrefMentions(hrefs, rec.Dir) {
			slog.Warn("Landing page has no link to module directory", "module", rec.Name, "dir", rec.Dir)
		}
	}
	return nil
}

func collectHrefs(doc *html.Node) []string {
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs
}

func anyHrefMentions(hrefs []string, dir string) bool {
	for _, h := range hrefs {
		if strings.Contains(h, dir) {
			return true
		}
	}
	return false
}
