package prefabs

import "embed"

//go:embed archetypes/*.yaml
var ArchetypesFS embed.FS
