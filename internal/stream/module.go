package stream

import "go.uber.org/fx"

// Module provides the order event hub.
var Module = fx.Provide(NewHub)
