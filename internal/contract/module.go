package contract

import "go.uber.org/fx"

// Module provides the parsed contract and, in strict mode, the response
// validator used by the requester.
var Module = fx.Module("contract",
	fx.Provide(
		Load,
		NewResponseValidator,
	),
)
