package logger

import "go.uber.org/fx"

// Module provides the shared slog logger to the rest of the storefront graph.
var Module = fx.Provide(New)
