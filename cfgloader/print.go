package cfgloader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rise-and-shine/mediator/mask"
)

// printConfig logs the loaded configuration with sensitive fields masked.
// Fields tagged `mask:"true"` are replaced with a placeholder.
func printConfig(config any) {
	var b strings.Builder

	fields := mask.Fields(config)
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "  %s: %v\n", pair.Key, pair.Value)
	}

	slog.Info(fmt.Sprintf("Loaded config:\n%s", b.String()))
}
