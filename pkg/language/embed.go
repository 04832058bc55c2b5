package language

import "embed"

// builtinLanguagesFS embeds the built-in language table, one file per
// language. Files load in lexical order, which is also registry order.
//
//go:embed languages/*.yml
var builtinLanguagesFS embed.FS
