package prompt

import "embed"

//go:embed templates/*.md
var builtinTemplates embed.FS
