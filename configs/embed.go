package configs

import (
	"embed"
)

// FS 內建的場次設定檔
//
//go:embed *.yaml
var FS embed.FS
