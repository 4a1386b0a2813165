package iconset

import (
	"strconv"
	"strings"
)

const (
	snippetItemIndent  = "        "
	snippetCloseIndent = "      "
)

// IconBlock formats paths as the "icon" array of a tauri.conf.json bundle
// section:
//
//	"icon": [
//	        "icons/32x32.png",
//	        "icons/icon.ico"
//	      ]
//
// Paths are JSON-quoted so backslashes in Windows paths stay valid.
func IconBlock(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = strconv.Quote(p)
	}
	var b strings.Builder
	b.WriteString(`"icon": [` + "\n")
	b.WriteString(snippetItemIndent)
	b.WriteString(strings.Join(quoted, ",\n"+snippetItemIndent))
	b.WriteString("\n" + snippetCloseIndent + "]")
	return b.String()
}
