// Package appfs embeds the static files shipped with the binaries.
package appfs

import "embed"

//go:embed migrations/*.sql templates/email/* assets/common-passwords.txt.gz
var FS embed.FS
