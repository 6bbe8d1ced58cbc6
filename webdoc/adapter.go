package webdoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/inkgraph/schema"
)

// blockTags are the elements extracted as standalone text blocks.
// Each matching element becomes one chunk; nested markup inside it is
// flattened to text.
var blockTags = map[string]bool{
	"p": true, "li": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"figcaption": true, "dt": true, "dd": true,
}

// skipTags are elements whose subtrees carry no note content.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"nav": true, "aside": true, "header": true, "footer": true,
	"iframe": true, "svg": true, "form": true,
}

// Config holds configuration for web page extraction.
type Config struct {
	// MinBlockChars drops extracted blocks shorter than this many
	// characters, filtering out link crumbs and button labels.
	MinBlockChars int

	// IncludeTitle emits the page title as the first chunk.
	IncludeTitle bool
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinBlockChars: 3,
		IncludeTitle:  true,
	}
}

// Adapter converts saved web pages into document chunks.
type Adapter struct {
	config Config
}

// NewAdapter creates an adapter with default configuration.
func NewAdapter() *Adapter {
	return &Adapter{config: DefaultConfig()}
}

// NewAdapterWithConfig creates an adapter with the given configuration.
func NewAdapterWithConfig(config Config) *Adapter {
	return &Adapter{config: config}
}

// ConvertFile reads an HTML file from disk and converts it. The file
// name is recorded as the document's source.
func (a *Adapter) ConvertFile(filename string) (*schema.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return a.Convert(f, filename)
}

// Convert parses HTML and emits one chunk per content block. The graph
// payload is empty; a web page carries no spatial structure.
func (a *Adapter) Convert(r io.Reader, sourceFile string) (*schema.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := &schema.Document{
		Metadata: schema.NewMetadata(sourceFile, schema.ContentTypeWebDoc),
		Chunks:   make([]schema.Chunk, 0),
		Graph: schema.GraphPayload{
			Nodes: make([]schema.Node, 0),
			Edges: make([]schema.Edge, 0),
		},
	}

	var blocks []string
	if a.config.IncludeTitle {
		if title := pageTitle(root); title != "" {
			blocks = append(blocks, title)
		}
	}
	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	blocks = append(blocks, collectBlocks(body, nil)...)

	for _, block := range blocks {
		if len(block) < a.config.MinBlockChars {
			continue
		}
		doc.Chunks = append(doc.Chunks, schema.Chunk{
			ChunkID:    schema.NewChunkID(schema.SourceWebDoc),
			Content:    block,
			SourceType: schema.SourceWebDoc,
			Modality:   schema.ModalityText,
		})
	}
	return doc, nil
}

// collectBlocks walks the DOM and returns the text of each block
// element in document order. Block elements are treated as leaves;
// anything nested inside them is flattened into the block's text.
func collectBlocks(n *html.Node, blocks []string) []string {
	if n.Type == html.ElementNode {
		if skipTags[n.Data] {
			return blocks
		}
		if blockTags[n.Data] {
			if text := textContent(n); text != "" {
				blocks = append(blocks, text)
			}
			return blocks
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		blocks = collectBlocks(c, blocks)
	}
	return blocks
}

// textContent returns the whitespace-collapsed text of a subtree.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
			return
		}
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// pageTitle returns the text of the head's title element.
func pageTitle(root *html.Node) string {
	if t := findElement(root, "title"); t != nil {
		return textContent(t)
	}
	return ""
}

// findElement returns the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
