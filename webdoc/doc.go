// Package webdoc converts saved web pages into the unified document
// format. Block-level text is extracted from the HTML body, with
// navigation and other boilerplate elements filtered out, and each
// block becomes one chunk.
package webdoc
